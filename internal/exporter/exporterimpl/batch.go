package exporterimpl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	"github.com/panjf2000/ants/v2"
)

// batchPoolSize caps the number of accounts exported concurrently.
const batchPoolSize = 5

// RunBatch validates the requested accounts against the supported set and
// fans the pipeline out across the valid ones. A single valid account is run
// inline; more are run on a bounded worker pool.
func (e *ExporterImpl) RunBatch(ctx context.Context, accounts []string, localFile string) domain.BatchResult {
	if len(accounts) == 0 {
		accounts = []string{e.Config.Exporter.DefaultAccount}
	}

	valid, invalid := domain.NormalizeAccounts(accounts)
	if len(invalid) > 0 {
		e.Logger.Warn("Ignoring unsupported accounts", "accounts", invalid)
	}

	if len(valid) == 0 {
		return domain.BatchResult{
			Status:            domain.RunStatusError,
			Error:             "no valid accounts specified",
			SupportedAccounts: domain.SupportedAccounts,
		}
	}

	var results []domain.RunResult
	if len(valid) == 1 {
		results = []domain.RunResult{e.runAccount(ctx, valid[0], localFile)}
	} else {
		results = e.fanOut(ctx, valid, localFile)
	}

	batch := aggregate(valid, results)
	if e.Notifier != nil {
		e.Notifier.NotifyBatchFailures(batch)
	}
	return batch
}

func (e *ExporterImpl) runAccount(ctx context.Context, account, localFile string) domain.RunResult {
	if localFile != "" {
		return e.RunFromFile(ctx, account, localFile)
	}
	return e.Run(ctx, account)
}

// fanOut runs each account on the pool and collects results with a per-account
// wait bound. A worker that overruns the bound is reported as failed; the
// in-flight run is left to finish on its own and its late result is dropped.
func (e *ExporterImpl) fanOut(ctx context.Context, accounts []string, localFile string) []domain.RunResult {
	pool, _ := ants.NewPool(batchPoolSize, ants.WithPreAlloc(true))
	defer pool.Release()

	var wg sync.WaitGroup
	resultCh := make(chan domain.RunResult, len(accounts))
	wait := e.Config.Exporter.BatchWait

	for _, account := range accounts {
		wg.Add(1)
		acct := account

		err := pool.Submit(func() {
			defer wg.Done()

			done := make(chan domain.RunResult, 1)
			go func() {
				done <- e.runAccount(ctx, acct, localFile)
			}()

			select {
			case res := <-done:
				resultCh <- res
			case <-time.After(wait):
				e.Logger.Error("Account export exceeded wait bound", "account", acct, "wait", wait)
				resultCh <- domain.RunResult{
					Status:          domain.RunStatusError,
					Account:         acct,
					Error:           fmt.Sprintf("export timed out after %s", wait),
					DurationSeconds: wait.Seconds(),
				}
			}
		})
		if err != nil {
			wg.Done()
			e.Logger.Error("Failed to submit export job to pool", "account", acct, "error", err)
			resultCh <- domain.RunResult{
				Status:  domain.RunStatusError,
				Account: acct,
				Error:   fmt.Sprintf("failed to submit export job: %v", err),
			}
		}
	}

	wg.Wait()
	close(resultCh)

	results := make([]domain.RunResult, 0, len(accounts))
	for res := range resultCh {
		results = append(results, res)
	}
	return results
}

func aggregate(valid []string, results []domain.RunResult) domain.BatchResult {
	total := 0
	var failed []string
	for _, res := range results {
		total += res.Stories
		if res.Status == domain.RunStatusError {
			failed = append(failed, res.Account)
		}
	}

	status := domain.RunStatusSuccess
	switch {
	case len(failed) == len(results) && len(failed) > 0:
		status = domain.RunStatusError
	case len(failed) > 0:
		status = domain.RunStatusPartialSuccess
	}

	return domain.BatchResult{
		Status:            status,
		AccountsProcessed: len(valid),
		TotalStories:      total,
		Results:           results,
		FailedAccounts:    failed,
	}
}
