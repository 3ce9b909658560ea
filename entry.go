package cdoc

import "context"

// Entry is a DocRecord stored in the catalog.
type Entry struct {
	ID       string    `json:"id"`
	SourceID string    `json:"sourceId"`
	Position int       `json:"position"`
	Record   DocRecord `json:"record"`
}

// EntryService represents a service for managing catalog entries.
type EntryService interface {
	// CreateEntries stores records for a source. Positions follow the order
	// of records. Returns ENOTFOUND if the source does not exist.
	CreateEntries(ctx context.Context, sourceID string, records []DocRecord) ([]*Entry, error)

	// FindEntries retrieves entries matching the filter, ordered by position.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)

	// DeleteEntriesBySource removes all entries for a source.
	DeleteEntriesBySource(ctx context.Context, sourceID string) error
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	SourceID *string `json:"sourceId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// EntryRecords returns the records of entries in order.
func EntryRecords(entries []*Entry) []DocRecord {
	records := make([]DocRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.Record)
	}
	return records
}
