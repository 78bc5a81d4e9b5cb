package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"bubblesea/internal/config"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// Extension of every bubble file
const Extension = ".bubble"

// Repository implements ports.BubbleStore with one file per bubble:
//
//	<dir>/0x1F.bubble
//
// holding the encoded text. The files are meant to be readable and diffable.
type Repository struct {
	dir    string
	logger *zap.Logger
}

// Ensure Repository implements BubbleStore
var _ ports.BubbleStore = (*Repository)(nil)

// NewRepository creates a repository rooted at dir, creating it if needed
func NewRepository(dir string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dir = config.ExpandHome(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create bubble directory: %w", err)
	}
	return &Repository{dir: dir, logger: logger}, nil
}

// Dir returns the directory holding the bubbles
func (r *Repository) Dir() string {
	return r.dir
}

func (r *Repository) path(id domain.ID) string {
	return filepath.Join(r.dir, id.String()+Extension)
}

// Lookup reads the encoded bubble. Read failures other than absence are logged.
func (r *Repository) Lookup(_ context.Context, id domain.ID) (string, bool) {
	data, err := os.ReadFile(r.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return "", false
	}
	if err != nil {
		r.logger.Error("bubble file unreadable", zap.Stringer("id", id), zap.Error(err))
		return "", false
	}
	return strings.TrimRight(string(data), "\n"), true
}

// Store writes the encoded bubble through a temporary file so readers never
// see a partial write
func (r *Repository) Store(_ context.Context, id domain.ID, encoded string) error {
	tmp, err := os.CreateTemp(r.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", id, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(encoded + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to store %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to store %s: %w", id, err)
	}
	if err := os.Rename(tmp.Name(), r.path(id)); err != nil {
		return fmt.Errorf("failed to store %s: %w", id, err)
	}
	return nil
}

// Delete removes a bubble file; a missing one is not an error
func (r *Repository) Delete(_ context.Context, id domain.ID) error {
	err := os.Remove(r.path(id))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", id, err)
	}
	return nil
}

// IDs lists the bubbles in the directory in ascending order.
// Files whose names are not bubble IDs are skipped.
func (r *Repository) IDs(_ context.Context) ([]domain.ID, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read bubble directory: %w", err)
	}

	var ids []domain.ID
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) {
			continue
		}
		id, err := domain.ParseID(strings.TrimSuffix(name, Extension))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// Close is a no-op; files are closed after every operation
func (r *Repository) Close() error {
	return nil
}
