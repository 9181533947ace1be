package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	"github.com/chapala/instagram-story-metrics/internal/repositories/runs"
	"github.com/chapala/instagram-story-metrics/pkg/config"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
)

type stubExporter struct {
	runResult   domain.RunResult
	batchResult domain.BatchResult

	lastAccount  string
	lastAccounts []string
	lastFile     string
}

func (s *stubExporter) Run(_ context.Context, account string) domain.RunResult {
	s.lastAccount = account
	return s.runResult
}

func (s *stubExporter) RunFromFile(_ context.Context, account, path string) domain.RunResult {
	s.lastAccount = account
	s.lastFile = path
	return s.runResult
}

func (s *stubExporter) RunBatch(_ context.Context, accounts []string, localFile string) domain.BatchResult {
	s.lastAccounts = accounts
	s.lastFile = localFile
	return s.batchResult
}

func (s *stubExporter) ScheduleDailyExport(context.Context) error { return nil }

type stubRuns struct {
	records []*runs.Record
	err     error

	lastAccount string
	lastLimit   int
}

func (s *stubRuns) Create(context.Context, runs.Record) error { return nil }

func (s *stubRuns) ListRecent(_ context.Context, account string, limit int) ([]*runs.Record, error) {
	s.lastAccount = account
	s.lastLimit = limit
	return s.records, s.err
}

func newTestServer(exp *stubExporter, history runs.Repository) *Server {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.Port = 0
	cfg.AWS.Region = "us-west-2"
	cfg.AWS.Bucket = "chapala-bronze-bucket"
	cfg.Exporter.DefaultAccount = "NPI"

	s := &Server{
		exporter: exp,
		runs:     history,
		logger:   logger.New(logger.Opts{}),
		config:   cfg,
	}
	return s
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&stubExporter{}, nil)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "instagram-story-metrics", body["service"])
	assert.Len(t, body["supported_accounts"], 5)

	env, ok := body["environment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "test", env["env"])
	assert.Equal(t, "us-west-2", env["region"])
	assert.Equal(t, "chapala-bronze-bucket", env["bucket"])
}

func TestSingleExportSuccess(t *testing.T) {
	exp := &stubExporter{runResult: domain.RunResult{Status: domain.RunStatusSuccess, Account: "LT", Stories: 3}}
	s := newTestServer(exp, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/story-metrics", `{"account": "lt"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lt", exp.lastAccount)

	var res domain.RunResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 3, res.Stories)
}

func TestSingleExportDefaultsAccount(t *testing.T) {
	exp := &stubExporter{runResult: domain.RunResult{Status: domain.RunStatusSuccess}}
	s := newTestServer(exp, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/story-metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NPI", exp.lastAccount)
}

func TestSingleExportUnsupportedAccount(t *testing.T) {
	exp := &stubExporter{}
	s := newTestServer(exp, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/story-metrics", `{"account": "zzz"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, exp.lastAccount)

	var res errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Contains(t, res.Error, "zzz")
	assert.Equal(t, domain.SupportedAccounts, res.SupportedAccounts)
}

func TestSingleExportLocalFile(t *testing.T) {
	exp := &stubExporter{runResult: domain.RunResult{Status: domain.RunStatusSuccess}}
	s := newTestServer(exp, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/story-metrics", `{"account": "NPI", "local_file": "/tmp/stories.json"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/tmp/stories.json", exp.lastFile)
}

func TestSingleExportPipelineError(t *testing.T) {
	exp := &stubExporter{runResult: domain.RunResult{Status: domain.RunStatusError, Error: "upstream fetch failed"}}
	s := newTestServer(exp, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/story-metrics", `{"account": "NPI"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSingleExportBadBody(t *testing.T) {
	s := newTestServer(&stubExporter{}, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/story-metrics", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchExportStatusMapping(t *testing.T) {
	tests := []struct {
		name  string
		batch domain.BatchResult
		want  int
	}{
		{
			name:  "all succeeded",
			batch: domain.BatchResult{Status: domain.RunStatusSuccess, AccountsProcessed: 2},
			want:  http.StatusOK,
		},
		{
			name:  "partial success",
			batch: domain.BatchResult{Status: domain.RunStatusPartialSuccess, AccountsProcessed: 2, FailedAccounts: []string{"LT"}},
			want:  http.StatusMultiStatus,
		},
		{
			name:  "nothing ran",
			batch: domain.BatchResult{Status: domain.RunStatusError, AccountsProcessed: 0, Error: "no valid accounts specified"},
			want:  http.StatusBadRequest,
		},
		{
			name:  "all failed",
			batch: domain.BatchResult{Status: domain.RunStatusError, AccountsProcessed: 2, FailedAccounts: []string{"NPI", "LT"}},
			want:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&stubExporter{batchResult: tt.batch}, nil)
			rec := doRequest(t, s, http.MethodPost, "/api/v1/story-metrics/batch", `{"accounts": ["NPI", "LT"]}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAllExportUsesEverySupportedAccount(t *testing.T) {
	exp := &stubExporter{batchResult: domain.BatchResult{Status: domain.RunStatusSuccess}}
	s := newTestServer(exp, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/story-metrics/all", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.SupportedAccounts, exp.lastAccounts)
}

func TestListRuns(t *testing.T) {
	history := &stubRuns{records: []*runs.Record{
		{ID: 1, Account: "NPI", Status: "success", CreatedAt: time.Now()},
		{ID: 2, Account: "LT", Status: "error", CreatedAt: time.Now()},
	}}
	s := newTestServer(&stubExporter{}, history)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/runs?account=NPI&limit=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NPI", history.lastAccount)
	assert.Equal(t, 5, history.lastLimit)

	var body struct {
		Runs  []runs.Record `json:"runs"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
}

func TestListRunsDefaultLimit(t *testing.T) {
	history := &stubRuns{}
	s := newTestServer(&stubExporter{}, history)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/runs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, history.lastLimit)
}

func TestListRunsRepositoryError(t *testing.T) {
	history := &stubRuns{err: errors.New("db down")}
	s := newTestServer(&stubExporter{}, history)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/runs", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListRunsUnavailable(t *testing.T) {
	s := newTestServer(&stubExporter{}, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/runs", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
