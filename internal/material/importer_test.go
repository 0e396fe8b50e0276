package material

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/store"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func minimalPDF() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestImport_PDF(t *testing.T) {
	s := openStore(t)
	im := NewImporter(s.MaterialRepo())
	im.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }

	path := writeFile(t, "IELTS_Reading_4.pdf", minimalPDF())
	m, err := im.Import(context.Background(), "  "+path+"  ")
	require.NoError(t, err)

	assert.Equal(t, "IELTS_Reading_4.pdf", m.Name)
	assert.Equal(t, "0.0MB", m.SizeLabel)
	assert.Equal(t, quiz.StatusNotStarted, m.Status)
	assert.NotEmpty(t, m.ID)

	got, err := s.MaterialRepo().Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Name, got.Name)
}

func TestImport_RejectsNonPDF(t *testing.T) {
	s := openStore(t)
	im := NewImporter(s.MaterialRepo())

	path := writeFile(t, "notes.pdf", []byte("just some plain text pretending to be a pdf"))
	_, err := im.Import(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	list, err := s.MaterialRepo().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImport_MissingFile(t *testing.T) {
	s := openStore(t)
	im := NewImporter(s.MaterialRepo())

	_, err := im.Import(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImport_Directory(t *testing.T) {
	s := openStore(t)
	im := NewImporter(s.MaterialRepo())

	_, err := im.Import(context.Background(), t.TempDir())
	assert.Error(t, err)
}
