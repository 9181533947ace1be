package storage

import (
	"fmt"
	"strings"
	"time"
)

// ObjectPaths computes the deterministic object keys for one account and one
// run date: the parquet data file and its JSON schema sidecar.
func ObjectPaths(account string, date time.Time) (dataKey, schemaKey string) {
	acct := strings.ToUpper(account)
	day := date.Format("2006-01-02")

	dataKey = fmt.Sprintf("Instagram/%s/insights/stories/%s/instagram_story_metrics_%s.parquet", acct, day, day)
	schemaKey = fmt.Sprintf("Instagram/%s/schemas/stories/%s/instagram_story_metrics_%s_schema.json", acct, day, day)
	return dataKey, schemaKey
}
