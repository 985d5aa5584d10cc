// Package store persists named documents. The file backend serves local
// CLI workflows; the Mongo backend serves the HTTP server. Both speak the
// same interface, so commands and handlers never care which one they got.
package store

import (
	"context"
	"regexp"
	"time"

	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/errors"
)

// Meta describes one stored document without its body.
type Meta struct {
	Name        string    `json:"name" bson:"_id"`
	Hash        string    `json:"hash" bson:"hash"`
	Components  int       `json:"components" bson:"components"`
	Connections int       `json:"connections" bson:"connections"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Store is a named document repository.
type Store interface {
	// Put saves doc under name, overwriting any previous version.
	Put(ctx context.Context, name string, doc *document.Document) (Meta, error)

	// Get returns the document stored under name, or a NOT_FOUND error.
	Get(ctx context.Context, name string) (*document.Document, error)

	// List enumerates stored documents sorted by name.
	List(ctx context.Context) ([]Meta, error)

	// Delete removes the document stored under name, or a NOT_FOUND error.
	Delete(ctx context.Context, name string) error

	Close(ctx context.Context) error
}

// Document names double as file names and Mongo ids, so the vocabulary
// is deliberately narrow.
var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName checks a document name against the store vocabulary.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return errors.New(errors.ErrCodeInvalidInput,
			"document name %q: use letters, digits, '.', '_', '-' (max 128 chars)", name)
	}
	return nil
}
