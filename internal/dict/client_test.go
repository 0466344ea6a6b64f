package dict

import (
	"context"
	"net/http"
	"net/http/httptest"
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

const sampleResponse = `[{
  "word": "lambent",
  "phonetic": "/ˈlæm.bənt/",
  "phonetics": [{"audio": ""}, {"audio": "https://example.org/lambent.mp3"}],
  "meanings": [{
    "partOfSpeech": "adjective",
    "definitions": [{"definition": "Brushing or flickering gently over a surface."}]
  }],
  "sourceUrls": ["https://en.wiktionary.org/wiki/lambent"]
}]`

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lambent", r.URL.Path)
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	def, err := c.Lookup(context.Background(), "lambent")
	require.NoError(t, err)

	assert.Equal(t, "lambent", def.Word)
	assert.Equal(t, "Brushing or flickering gently over a surface.", def.Meaning)
	assert.Equal(t, "https://example.org/lambent.mp3", def.AudioURL)
	assert.Equal(t, "https://en.wiktionary.org/wiki/lambent", def.SourceURL)
}

func TestLookupUnknownWord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"No Definitions Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Lookup(context.Background(), "zzzzz")
	assert.ErrorIs(t, err, ErrNoDefinition)
}

func TestLookupEmptyWord(t *testing.T) {
	c := NewClient("http://127.0.0.1:0")
	_, err := c.Lookup(context.Background(), "   ")
	assert.Error(t, err)
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Lookup(context.Background(), "word")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoDefinition)
}
