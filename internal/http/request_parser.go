// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data:
// transaction bodies sent as JSON or form data, and list query parameters.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"budget/internal/core"
	"budget/internal/query"
)

// maxBodyBytes bounds the size of a transaction body.
const maxBodyBytes = 64 << 10

var (
	// ErrMalformedBody is returned when a body is neither valid JSON nor form data.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrInvalidLimit is returned for a limit that is not a non-negative integer.
	ErrInvalidLimit = errors.New("invalid limit")
)

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}

	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if p.err == nil && len(p.body) > maxBodyBytes {
		p.err = fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedBody, maxBodyBytes)
	}
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	trimmed := strings.TrimSpace(string(p.body))
	if trimmed == "" {
		p.formData = url.Values{}
		return nil
	}

	if strings.HasPrefix(trimmed, "{") || strings.Contains(p.contentType, "application/json") {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal([]byte(trimmed), &p.jsonData); err != nil {
			p.err = fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		return p.err
	}

	p.formData, p.err = url.ParseQuery(trimmed)
	if p.err != nil {
		p.err = fmt.Errorf("%w: %v", ErrMalformedBody, p.err)
	}
	return p.err
}

// Get returns a string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// stringValue converts a decoded JSON value to string.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ParseInput reads a transaction from the request body. Field problems are
// reported with the core validation sentinels; a missing date means today.
func ParseInput(r *http.Request) (core.Input, error) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		return core.Input{}, err
	}

	typ, err := core.ParseType(p.Get("type"))
	if err != nil {
		return core.Input{}, err
	}

	in := core.Input{
		Type:     typ,
		Category: p.Get("category"),
		Notes:    p.Get("notes"),
		Date:     core.Today(),
	}

	if in.Amount, err = core.ParseAmount(p.Get("amount")); err != nil {
		return core.Input{}, fmt.Errorf("%w: %q", core.ErrInvalidAmount, p.Get("amount"))
	}

	if raw := p.Get("date"); raw != "" {
		if in.Date, err = core.ParseDate(raw); err != nil {
			return core.Input{}, err
		}
	}

	return in, in.Validate()
}

// ParseQueryParams builds list parameters from type, q, sort and limit.
func ParseQueryParams(values url.Values) (query.Params, error) {
	var (
		params query.Params
		err    error
	)

	if params.Type, err = query.ParseTypeFilter(values.Get("type")); err != nil {
		return query.Params{}, err
	}
	if params.SortBy, err = query.ParseSortBy(values.Get("sort")); err != nil {
		return query.Params{}, err
	}
	// The search term is matched as typed, surrounding spaces included.
	params.Search = stripControl(values.Get("q"))

	if v := strings.TrimSpace(values.Get("limit")); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return query.Params{}, fmt.Errorf("%w: %q", ErrInvalidLimit, v)
		}
		params.Limit = limit
	}

	return params, nil
}
