package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"budget/internal/core"
	"budget/internal/query"
)

func TestRequestBodyParser(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantJSON    bool
		wantErr     bool
		key         string
		want        string
	}{
		{name: "json string", body: `{"category":"Food"}`, contentType: "application/json", wantJSON: true, key: "category", want: "Food"},
		{name: "json number", body: `{"amount":12.5}`, wantJSON: true, key: "amount", want: "12.5"},
		{name: "json missing key", body: `{"amount":12.5}`, wantJSON: true, key: "notes", want: ""},
		{name: "form", body: "category=Food&notes=a+b", contentType: "application/x-www-form-urlencoded", key: "notes", want: "a b"},
		{name: "control characters stripped", body: "notes=a%00b", key: "notes", want: "ab"},
		{name: "empty body", body: "", key: "category", want: ""},
		{name: "invalid json", body: `{"category":`, wantErr: true},
		{name: "json content type with garbage", body: `category=Food`, contentType: "application/json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			p := NewRequestBodyParser(req)
			err := p.Parse()
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedBody) {
					t.Fatalf("Parse() error = %v, want ErrMalformedBody", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if (p.jsonData != nil) != tt.wantJSON {
				t.Errorf("parsed as JSON = %v, want %v", p.jsonData != nil, tt.wantJSON)
			}
			if got := p.Get(tt.key); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestRequestBodyParserRejectsOversizedBody(t *testing.T) {
	body := "notes=" + strings.Repeat("x", maxBodyBytes)
	p := NewRequestBodyParser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if err := p.Parse(); !errors.Is(err, ErrMalformedBody) {
		t.Fatalf("Parse() error = %v, want ErrMalformedBody", err)
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    core.Input
		wantErr error
	}{
		{
			name: "complete json",
			body: `{"type":"Expense","category":"Food","amount":12.345,"date":"2025-01-02","notes":"lunch"}`,
			want: core.Input{Type: core.Expense, Category: "Food", Amount: 12.35, Date: core.NewDate(2025, 1, 2), Notes: "lunch"},
		},
		{
			name: "form with comma decimal",
			body: "type=income&category=Gift&amount=20,5&date=2025-02-03",
			want: core.Input{Type: core.Income, Category: "Gift", Amount: 20.5, Date: core.NewDate(2025, 2, 3)},
		},
		{name: "unknown type", body: `{"type":"transfer"}`, wantErr: core.ErrInvalidType},
		{name: "negative", body: `{"type":"expense","category":"Food","amount":"-1"}`, wantErr: core.ErrInvalidAmount},
		{name: "garbage amount", body: `{"type":"expense","category":"Food","amount":"ten"}`, wantErr: core.ErrInvalidAmount},
		{name: "bad date", body: `{"type":"expense","category":"Food","amount":1,"date":"02/01/2025"}`, wantErr: core.ErrInvalidDate},
		{name: "no category", body: `{"type":"expense","amount":1}`, wantErr: core.ErrEmptyCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInput(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseInput() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInput() error = %v", err)
			}
			if !got.WithID("x").Equal(tt.want.WithID("x")) {
				t.Errorf("ParseInput() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseQueryParams(t *testing.T) {
	tests := []struct {
		name    string
		query   url.Values
		want    query.Params
		wantErr error
	}{
		{name: "defaults", query: url.Values{}, want: query.Params{Type: query.All, SortBy: query.ByDate}},
		{
			name:  "everything",
			query: url.Values{"type": {"expense"}, "q": {"food"}, "sort": {"amount"}, "limit": {"5"}},
			want:  query.Params{Type: query.Expense, Search: "food", SortBy: query.ByAmount, Limit: 5},
		},
		{
			name:  "search keeps surrounding spaces",
			query: url.Values{"q": {" shoes\x00"}},
			want:  query.Params{Type: query.All, Search: " shoes", SortBy: query.ByDate},
		},
		{name: "bad type", query: url.Values{"type": {"transfer"}}, wantErr: query.ErrInvalidFilter},
		{name: "bad sort", query: url.Values{"sort": {"name"}}, wantErr: query.ErrInvalidSort},
		{name: "bad limit", query: url.Values{"limit": {"many"}}, wantErr: ErrInvalidLimit},
		{name: "negative limit", query: url.Values{"limit": {"-2"}}, wantErr: ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQueryParams(tt.query)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseQueryParams() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseQueryParams() = %+v, %v, want %+v", got, err, tt.want)
			}
		})
	}
}
