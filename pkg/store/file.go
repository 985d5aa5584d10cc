package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/snapgraph/snapgraph/pkg/cache"
	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/errors"
)

// FileStore keeps each document as "<name>.json" in one directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store in dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create store directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Put implements Store.
func (s *FileStore) Put(ctx context.Context, name string, doc *document.Document) (Meta, error) {
	if err := ValidateName(name); err != nil {
		return Meta{}, err
	}
	if err := document.WriteFile(doc, s.path(name)); err != nil {
		return Meta{}, err
	}
	return s.meta(name, doc)
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, name string) (*document.Document, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	path := s.path(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "no document named %q", name)
	}
	return document.ReadFile(path)
}

// List implements Store.
func (s *FileStore) List(ctx context.Context) ([]Meta, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read store directory")
	}

	var metas []Meta
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !ok {
			continue
		}
		doc, err := document.ReadFile(s.path(name))
		if err != nil {
			// A corrupt entry is listed nowhere rather than failing the
			// whole listing.
			continue
		}
		meta, err := s.meta(name, doc)
		if err != nil {
			continue
		}
		metas = append(metas, meta)
	}

	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	return metas, nil
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeNotFound, "no document named %q", name)
	}
	return err
}

// Close implements Store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) meta(name string, doc *document.Document) (Meta, error) {
	data, err := document.Marshal(doc)
	if err != nil {
		return Meta{}, err
	}
	info, err := os.Stat(s.path(name))
	if err != nil {
		return Meta{}, errors.Wrap(errors.ErrCodeInternal, err, "stat %s", name)
	}
	return Meta{
		Name:        name,
		Hash:        cache.Hash(data),
		Components:  len(doc.Components),
		Connections: len(doc.Connections),
		UpdatedAt:   info.ModTime().UTC(),
	}, nil
}

var _ Store = (*FileStore)(nil)
