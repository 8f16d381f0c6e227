package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/ohowland/elecalc/internal/pkg/project"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := New(dir)
	assert.NilError(t, err)

	_, err = s.Get(ctx, "k")
	assert.Assert(t, errors.Is(err, project.ErrNotFound))

	assert.NilError(t, s.Set(ctx, "k", []byte(`{"a":"1"}`)))
	assert.NilError(t, s.Set(ctx, "k", []byte(`{"a":"2"}`)))
	v, err := s.Get(ctx, "k")
	assert.NilError(t, err)
	assert.Equal(t, string(v), `{"a":"2"}`)

	entries, err := os.ReadDir(dir)
	assert.NilError(t, err)
	assert.Equal(t, len(entries), 1)
	assert.Equal(t, entries[0].Name(), "k.json")

	assert.NilError(t, s.Delete(ctx, "k"))
	assert.NilError(t, s.Delete(ctx, "k"))
}

func TestKeyCannotEscapeDir(t *testing.T) {
	s, err := New(t.TempDir())
	assert.NilError(t, err)
	assert.Equal(t, filepath.Dir(s.path("../../etc/passwd")), s.dir)
}
