package http

import (
	"net/http"
	"time"

	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/middleware/trace"
	"budget/internal/query"
)

type listResponse struct {
	Transactions []core.Transaction `json:"transactions"`
	Count        int                `json:"count"`
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	OK(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	}).Write(w)
}

// handleReady reports whether the ledger has been loaded
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store == nil || !s.store.Ready() {
		ErrorResponse(http.StatusServiceUnavailable, "ledger not initialized").Write(w)
		return
	}
	OK(map[string]any{
		"status":       "ready",
		"transactions": s.store.Len(),
	}).Write(w)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	requests := s.tracer.GetMetrics()
	limits := s.limiter.GetMetrics()
	OK(map[string]any{
		"requests_total":       requests.TotalRequests,
		"server_errors_total":  requests.ServerErrors,
		"avg_response_time_ms": requests.AverageResponseTime().Milliseconds(),
		"rate_limit_hits":      limits.TotalHits,
		"rate_limit_clients":   limits.ClientCount,
		"suspicious_requests":  s.detector.GetMetrics().SuspiciousRequests,
	}).Write(w)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	params, err := ParseQueryParams(r.URL.Query())
	if err != nil {
		errorResponse(err).Write(w)
		return
	}

	txs := query.Apply(s.store.Snapshot(), params)
	OK(listResponse{Transactions: txs, Count: len(txs)}).Write(w)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		NotFoundError("transaction not found").Write(w)
		return
	}
	OK(tx).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	in, err := ParseInput(r)
	if err != nil {
		s.writeError(w, r, err, log.OpCreate)
		return
	}

	tx, err := s.store.Add(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, log.OpCreate)
		return
	}

	Created(tx).
		Header("Location", "/api/transactions/"+tx.ID).
		Write(w)
}

// handleUpdateTransaction replaces every field of a transaction. An unknown id
// is a silent no-op, so the response is 204 either way.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	in, err := ParseInput(r)
	if err != nil {
		s.writeError(w, r, err, log.OpUpdate)
		return
	}

	if err := s.store.Update(r.Context(), r.PathValue("id"), in); err != nil {
		s.writeError(w, r, err, log.OpUpdate)
		return
	}
	NoContent().Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err, log.OpDelete)
		return
	}
	NoContent().Write(w)
}

// writeError logs failures the client cannot fix and writes the error response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, op string) {
	resp := errorResponse(err)
	if resp.statusCode >= http.StatusInternalServerError {
		fields := log.NewFields()
		if id := r.PathValue("id"); id != "" {
			fields[log.FieldTransactionID] = id
		}
		log.NewStructuredLogger(log.FromContext(r.Context())).
			LogError(r.Context(), "Ledger operation failed", err, op, fields)

		if body, ok := resp.payload.(ErrorBody); ok {
			body.RequestID = trace.GetRequestID(r.Context())
			resp.JSON(body)
		}
	}
	resp.Write(w)
}
