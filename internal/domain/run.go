package domain

type RunStatus string

const (
	RunStatusSuccess        RunStatus = "success"
	RunStatusError          RunStatus = "error"
	RunStatusPartialSuccess RunStatus = "partial_success"
)

// RunResult is the outcome of one account's export. Pipeline failures are
// reported here as an error status, never raised to the caller.
type RunResult struct {
	Status          RunStatus `json:"status"`
	Account         string    `json:"account"`
	Stories         int       `json:"stories_processed"`
	DateRange       string    `json:"date_range,omitempty"`
	Source          string    `json:"source,omitempty"`
	Error           string    `json:"error,omitempty"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// BatchResult aggregates the results of a multi-account export.
type BatchResult struct {
	Status            RunStatus   `json:"status"`
	AccountsProcessed int         `json:"accounts_processed"`
	TotalStories      int         `json:"total_stories"`
	Results           []RunResult `json:"results"`
	FailedAccounts    []string    `json:"failed_accounts,omitempty"`
	Error             string      `json:"error,omitempty"`
	SupportedAccounts []string    `json:"supported_accounts,omitempty"`
}
