package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/cdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cdoc.EntryService = (*EntryService)(nil)

// EntryService implements cdoc.EntryService using SQLite.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

// CreateEntries stores records for a source in a single transaction.
func (s *EntryService) CreateEntries(ctx context.Context, sourceID string, records []cdoc.DocRecord) ([]*cdoc.Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM sources WHERE id = ?", sourceID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, cdoc.Errorf(cdoc.ENOTFOUND, "source not found")
	}
	if err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, source_id, position, signature_preview, brief, params, returns, line)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	entries := make([]*cdoc.Entry, 0, len(records))
	for i, rec := range records {
		if rec.Brief == "" {
			return nil, cdoc.Errorf(cdoc.EINVALID, "record %d has no brief", i)
		}
		params, err := marshalParams(rec.Params)
		if err != nil {
			return nil, err
		}

		entry := &cdoc.Entry{
			ID:       uuid.New().String(),
			SourceID: sourceID,
			Position: i,
			Record:   rec,
		}
		if _, err := stmt.ExecContext(ctx, entry.ID, sourceID, i,
			rec.SignaturePreview, rec.Brief, params, rec.Returns, rec.Line); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindEntries retrieves entries matching the filter, ordered by position.
func (s *EntryService) FindEntries(ctx context.Context, filter cdoc.EntryFilter) ([]*cdoc.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_id, position, signature_preview, brief, params, returns, line FROM entries WHERE 1=1")

	if filter.SourceID != nil {
		query.WriteString(" AND source_id = ?")
		args = append(args, *filter.SourceID)
	}

	query.WriteString(" ORDER BY source_id ASC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*cdoc.Entry
	for rows.Next() {
		var entry cdoc.Entry
		var params string

		if err := rows.Scan(&entry.ID, &entry.SourceID, &entry.Position,
			&entry.Record.SignaturePreview, &entry.Record.Brief, &params,
			&entry.Record.Returns, &entry.Record.Line); err != nil {
			return nil, err
		}
		if entry.Record.Params, err = unmarshalParams(params); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// DeleteEntriesBySource removes all entries for a source.
func (s *EntryService) DeleteEntriesBySource(ctx context.Context, sourceID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE source_id = ?", sourceID)
	return err
}

func marshalParams(params []cdoc.Param) (string, error) {
	if len(params) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode params: %w", err)
	}
	return string(b), nil
}

// unmarshalParams returns nil for an empty list so stored records compare
// equal to freshly extracted ones.
func unmarshalParams(s string) ([]cdoc.Param, error) {
	var params []cdoc.Param
	if err := json.Unmarshal([]byte(s), &params); err != nil {
		return nil, fmt.Errorf("failed to decode params: %w", err)
	}
	if len(params) == 0 {
		return nil, nil
	}
	return params, nil
}
