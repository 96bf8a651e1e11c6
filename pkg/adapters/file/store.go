package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/luthierlabs/fretbridge/internal/logging"
	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// Store implements ports.TemplateStore on the local filesystem. Each
// template lives at <root>/<slug>.json; the root is created on first save.
type Store struct {
	root   string
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for soft failures during listing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store rooted at the given directory. An empty root
// defaults to ".fretbridge/templates".
func New(root string, opts ...Option) *Store {
	if root == "" {
		root = filepath.Join(".fretbridge", "templates")
	}
	s := &Store{root: root, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the user-templates directory.
func (s *Store) Root() string { return s.root }

// Save writes a template under its derived slug. A slug already taken by a
// different-named template gets an incrementing counter suffix instead of
// being overwritten; saving under the same name replaces the record.
func (s *Store) Save(ctx context.Context, tpl domain.Template) (string, error) {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure template directory: %w", err)
	}

	id := domain.Slugify(tpl.Name)
	path := filepath.Join(s.root, id+".json")
	if existing, err := s.read(path); err == nil && existing.Name != tpl.Name {
		counter := 2
		for {
			candidate := fmt.Sprintf("%s_%d", id, counter)
			path = filepath.Join(s.root, candidate+".json")
			if _, err := os.Stat(path); os.IsNotExist(err) {
				id = candidate
				break
			}
			counter++
		}
	}

	tpl.ID = id
	if tpl.CreatedAt == "" {
		tpl.CreatedAt = time.Now().Format("2006-01-02")
	}

	if err := writeAtomic(s.root, path, &tpl); err != nil {
		return "", err
	}
	return id, nil
}

// Load retrieves a template by slug.
func (s *Store) Load(ctx context.Context, id string) (*domain.Template, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	tpl, err := s.read(filepath.Join(s.root, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("template %q: %w", id, domain.ErrTemplateNotFound)
		}
		return nil, err
	}
	tpl.ID = id
	return tpl, nil
}

// Delete removes a template file. The slug is validated before any path
// resolution happens.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.root, id+".json"))
	if os.IsNotExist(err) {
		return fmt.Errorf("template %q: %w", id, domain.ErrTemplateNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// List enumerates every stored template, sorted by name. Unreadable files
// are logged and skipped rather than failing the whole listing.
func (s *Store) List(ctx context.Context) ([]domain.Template, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Template{}, nil
		}
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make([]domain.Template, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		tpl, err := s.read(filepath.Join(s.root, entry.Name()))
		if err != nil {
			s.logger.Warn("skipping unreadable template", "file", entry.Name(), "err", err)
			continue
		}
		tpl.ID = strings.TrimSuffix(entry.Name(), ".json")
		templates = append(templates, *tpl)
	}

	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}

func (s *Store) read(path string) (*domain.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tpl domain.Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template: %w", err)
	}
	return &tpl, nil
}

// checkID rejects identifiers with path-separator-like components before
// any filesystem path is resolved.
func checkID(id string) error {
	if id == "" || id != filepath.Base(id) || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("id %q: %w", id, domain.ErrPathTraversal)
	}
	return nil
}

// writeAtomic writes to a temp file in the destination directory, fsyncs,
// then renames over the destination. Same-directory temp keeps the rename
// on one filesystem.
func writeAtomic(dir, destPath string, tpl *domain.Template) error {
	data, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal template: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "tmp-template-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename cannot replace an existing file on Windows; the brief
	// remove window beats leaving a partially written template behind.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to replace existing template: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}
