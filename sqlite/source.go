package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/cdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cdoc.SourceService = (*SourceService)(nil)

// SourceService implements cdoc.SourceService using SQLite.
type SourceService struct {
	db *DB
}

// NewSourceService creates a new SourceService.
func NewSourceService(db *DB) *SourceService {
	return &SourceService{db: db}
}

const sourceColumns = "id, name, path, content_hash, created_at, updated_at"

// CreateSource creates a new source.
func (s *SourceService) CreateSource(ctx context.Context, source *cdoc.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM sources WHERE name = ?", source.Name).Scan(&exists)
	if err == nil {
		return cdoc.Errorf(cdoc.ECONFLICT, "source %q already exists", source.Name)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	source.ID = uuid.New().String()
	now := time.Now().UTC()
	source.CreatedAt = now
	source.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sources (id, name, path, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, source.ID, source.Name, source.Path, source.ContentHash,
		source.CreatedAt.Format(time.RFC3339), source.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindSourceByID retrieves a source by ID.
func (s *SourceService) FindSourceByID(ctx context.Context, id string) (*cdoc.Source, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sourceColumns+" FROM sources WHERE id = ?", id)
	source, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, cdoc.Errorf(cdoc.ENOTFOUND, "source not found")
	}
	if err != nil {
		return nil, err
	}
	return source, nil
}

// FindSources retrieves sources matching the filter, ordered by name.
func (s *SourceService) FindSources(ctx context.Context, filter cdoc.SourceFilter) ([]*cdoc.Source, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + sourceColumns + " FROM sources WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Path != nil {
		query.WriteString(" AND path = ?")
		args = append(args, *filter.Path)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*cdoc.Source
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// UpdateSource updates an existing source.
func (s *SourceService) UpdateSource(ctx context.Context, id string, upd cdoc.SourceUpdate) (*cdoc.Source, error) {
	source, err := s.FindSourceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Path != nil {
		source.Path = *upd.Path
	}
	if upd.ContentHash != nil {
		source.ContentHash = *upd.ContentHash
	}

	if err := source.Validate(); err != nil {
		return nil, err
	}

	source.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE sources
		SET path = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, source.Path, source.ContentHash, source.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return source, nil
}

// DeleteSource permanently removes a source. Entries are removed by the
// cascading foreign key.
func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return cdoc.Errorf(cdoc.ENOTFOUND, "source not found")
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSource(row scanner) (*cdoc.Source, error) {
	var source cdoc.Source
	var createdAt, updatedAt string

	if err := row.Scan(&source.ID, &source.Name, &source.Path, &source.ContentHash,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if source.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if source.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &source, nil
}
