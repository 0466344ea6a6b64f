package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Risriddle/Librarize/internal/config"
	"github.com/Risriddle/Librarize/internal/log"
)

func init() {
	config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func TestPutOpenDelete(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	key := NewKey("pdfs", "some book.pdf")

	path, err := s.Put(key, strings.NewReader("%PDF-1.4 fake"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, path, s.Path(key))

	f, err := s.Open(key)
	require.NoError(t, err)
	raw, err := io.ReadAll(f)
	require.NoError(t, err)
	f.Close()
	assert.Equal(t, "%PDF-1.4 fake", string(raw))

	require.NoError(t, s.Delete(key))
	_, err = s.Open(key)
	assert.Error(t, err)

	// Deleting an absent blob is success, cascades retry.
	assert.NoError(t, s.Delete(key))
}

func TestNewKeyUnique(t *testing.T) {
	a := NewKey("pdfs", "x.pdf")
	b := NewKey("pdfs", "x.pdf")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "pdfs/"))
	assert.True(t, strings.HasSuffix(a, "-x.pdf"))
}
