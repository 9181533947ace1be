package storage

import (
	"context"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/table"
	errs "github.com/chapala/instagram-story-metrics/pkg/errors"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
)

// Writer serializes a table and uploads it with its schema sidecar to the
// partitioned object paths for the account and date.
type Writer struct {
	uploader Uploader
	logger   logger.Logger
}

func NewWriter(uploader Uploader, log logger.Logger) *Writer {
	return &Writer{
		uploader: uploader,
		logger:   log.WithComponent("UploadWriter"),
	}
}

func (w *Writer) WriteTable(ctx context.Context, tbl *table.Table, account string, date time.Time) error {
	if tbl.IsEmpty() {
		w.logger.Warn("No data to upload, table is empty", "account", account)
		return nil
	}

	data, err := tbl.Parquet()
	if err != nil {
		return errs.Wrap(err, "serialize table")
	}

	schema, err := tbl.SchemaJSON()
	if err != nil {
		return errs.Wrap(err, "serialize schema")
	}

	dataKey, schemaKey := ObjectPaths(account, date)

	if err := w.uploader.Upload(ctx, dataKey, "application/octet-stream", data); err != nil {
		return err
	}
	if err := w.uploader.Upload(ctx, schemaKey, "application/json", schema); err != nil {
		return err
	}

	w.logger.Info("Uploaded table and schema", "account", account, "rows", tbl.Len(), "data_key", dataKey, "schema_key", schemaKey)
	return nil
}
