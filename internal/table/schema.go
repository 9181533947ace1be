package table

import "encoding/json"

type SchemaField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SchemaDescriptor is the sidecar schema document written next to each data
// file, one field entry per output column in column order.
type SchemaDescriptor struct {
	Type   string        `json:"type"`
	Fields []SchemaField `json:"fields"`
}

// Schema returns the fixed output schema. It is identical whether the table
// holds zero or N rows; consumers never need to special-case the empty table.
func Schema() SchemaDescriptor {
	return SchemaDescriptor{
		Type: "struct",
		Fields: []SchemaField{
			{Name: "story_id", Type: "string"},
			{Name: "Story Date", Type: "timestamp[ns]"},
			{Name: "timestamp", Type: "timestamp[ns]"},
			{Name: "Media Type", Type: "string"},
			{Name: "permalink", Type: "string"},
			{Name: "media_url", Type: "string"},
			{Name: "Views", Type: "int64"},
			{Name: "Reach", Type: "int64"},
			{Name: "Replies", Type: "int64"},
			{Name: "Shares", Type: "int64"},
			{Name: "Total Interactions", Type: "int64"},
			{Name: "Profile Visits", Type: "int64"},
			{Name: "Follows", Type: "int64"},
			{Name: "Navigation Total", Type: "int64"},
			{Name: "Taps Forward", Type: "int64"},
			{Name: "Taps Back", Type: "int64"},
			{Name: "Taps Exit", Type: "int64"},
			{Name: "Swipe Forward", Type: "int64"},
			{Name: "Exit Rate", Type: "double"},
			{Name: "Reply Rate", Type: "double"},
			{Name: "Forward Rate", Type: "double"},
			{Name: "Back Rate", Type: "double"},
			{Name: "metric_date", Type: "timestamp[ns]"},
		},
	}
}

// SchemaJSON serializes the schema descriptor for the sidecar object.
func (t *Table) SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}
