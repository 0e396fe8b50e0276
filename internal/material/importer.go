// Package material imports learning documents into the library.
package material

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/store"
)

// ErrUnsupportedType is returned for files that are not PDF documents.
var ErrUnsupportedType = errors.New("only PDF documents can be imported")

// Importer registers documents in a MaterialRepo.
type Importer struct {
	repo store.MaterialRepo
	now  func() time.Time
}

// NewImporter creates an Importer backed by repo.
func NewImporter(repo store.MaterialRepo) *Importer {
	return &Importer{repo: repo, now: time.Now}
}

// Import checks that path is a PDF and records it as a new material named
// after the file. The document itself is not copied.
func (im *Importer) Import(ctx context.Context, path string) (quiz.Material, error) {
	path = expandHome(strings.TrimSpace(path))

	info, err := os.Stat(path)
	if err != nil {
		return quiz.Material{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return quiz.Material{}, fmt.Errorf("%s is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return quiz.Material{}, fmt.Errorf("detect type of %s: %w", path, err)
	}
	if !mt.Is("application/pdf") {
		return quiz.Material{}, fmt.Errorf("%w: %s is %s", ErrUnsupportedType, filepath.Base(path), mt.String())
	}

	m := quiz.NewMaterial(filepath.Base(path), info.Size(), im.now())
	if err := im.repo.Add(ctx, store.MaterialRecordFrom(m)); err != nil {
		return quiz.Material{}, fmt.Errorf("add material: %w", err)
	}
	return m, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
