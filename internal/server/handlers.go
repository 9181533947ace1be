package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	errs "github.com/chapala/instagram-story-metrics/pkg/errors"
)

type exportRequest struct {
	Account   string   `json:"account"`
	Accounts  []string `json:"accounts"`
	LocalFile string   `json:"local_file"`
}

type errorResponse struct {
	Error             string   `json:"error"`
	SupportedAccounts []string `json:"supported_accounts,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"service":            "instagram-story-metrics",
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
		"supported_accounts": domain.SupportedAccounts,
		"environment": map[string]string{
			"env":    s.config.App.Env,
			"region": s.config.AWS.Region,
			"bucket": s.config.AWS.Bucket,
		},
	})
}

// handleSingleExport runs the pipeline for one account.
func (s *Server) handleSingleExport(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	account := req.Account
	if account == "" {
		account = s.config.Exporter.DefaultAccount
	}
	if !domain.IsSupportedAccount(account) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:             "unsupported account: " + account,
			SupportedAccounts: domain.SupportedAccounts,
		})
		return
	}

	var res domain.RunResult
	if req.LocalFile != "" {
		res = s.exporter.RunFromFile(r.Context(), account, req.LocalFile)
	} else {
		res = s.exporter.Run(r.Context(), account)
	}

	status := http.StatusOK
	if res.Status == domain.RunStatusError {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, res)
}

func (s *Server) handleBatchExport(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	batch := s.exporter.RunBatch(r.Context(), req.Accounts, req.LocalFile)
	writeJSON(w, batchStatusCode(batch), batch)
}

// handleAllExport runs the batch pipeline over every supported account.
func (s *Server) handleAllExport(w http.ResponseWriter, r *http.Request) {
	batch := s.exporter.RunBatch(r.Context(), domain.SupportedAccounts, "")
	writeJSON(w, batchStatusCode(batch), batch)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "run history is not available"})
		return
	}

	query := r.URL.Query()
	limit := 20
	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	records, err := s.runs.ListRecent(r.Context(), query.Get("account"), limit)
	if err != nil {
		s.logger.Error("Failed to list run history", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list run history"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": records, "count": len(records)})
}

// decodeRequest tolerates an empty body so curl without -d still works.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (exportRequest, bool) {
	var req exportRequest
	if r.Body == nil || r.ContentLength == 0 {
		return req, true
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: errs.Wrap(errs.ErrInvalidRequest, "malformed request body").Error(),
		})
		return req, false
	}
	return req, true
}

// batchStatusCode maps a batch outcome to an HTTP status. A batch that never
// ran any account is a client error; one that partially succeeded reports
// multi-status so callers can inspect the per-account results.
func batchStatusCode(batch domain.BatchResult) int {
	switch {
	case batch.Status == domain.RunStatusError && batch.AccountsProcessed == 0:
		return http.StatusBadRequest
	case batch.Status == domain.RunStatusPartialSuccess:
		return http.StatusMultiStatus
	case batch.Status == domain.RunStatusError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
