package cdoc

import (
	"context"
	"time"
)

// Source represents an annotated source file registered in the catalog.
type Source struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.Path == "" {
		return Errorf(EINVALID, "source path required")
	}
	return nil
}

// SourceService represents a service for managing catalogued sources.
type SourceService interface {
	// CreateSource creates a new source.
	// Returns ECONFLICT if a source with the same name exists.
	CreateSource(ctx context.Context, source *Source) error

	// FindSourceByID retrieves a source by ID.
	// Returns ENOTFOUND if source does not exist.
	FindSourceByID(ctx context.Context, id string) (*Source, error)

	// FindSources retrieves sources matching the filter.
	FindSources(ctx context.Context, filter SourceFilter) ([]*Source, error)

	// UpdateSource updates an existing source.
	// Returns ENOTFOUND if source does not exist.
	UpdateSource(ctx context.Context, id string, upd SourceUpdate) (*Source, error)

	// DeleteSource permanently removes a source and all associated entries.
	// Returns ENOTFOUND if source does not exist.
	DeleteSource(ctx context.Context, id string) error
}

// SourceFilter represents a filter for FindSources.
type SourceFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
	Path *string `json:"path"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SourceUpdate represents fields that can be updated on a source.
type SourceUpdate struct {
	Path        *string `json:"path"`
	ContentHash *string `json:"contentHash"`
}

// SourceReader loads annotated source text.
type SourceReader interface {
	// ReadSource returns the full text at path.
	// Returns ENOTFOUND if nothing exists at path.
	ReadSource(ctx context.Context, path string) (string, error)
}
