// Package dict looks up word definitions against an external dictionary
// service. Lookups are best effort: a failed or empty lookup degrades to
// "definition unavailable" and never blocks saving the word.
package dict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Risriddle/Librarize/internal/log"
)

// ErrNoDefinition means the service answered but knows no definition.
var ErrNoDefinition = errors.New("no definition found")

// Definition is the usable part of a dictionary answer.
type Definition struct {
	Word      string `json:"word"`
	Meaning   string `json:"meaning"`
	Phonetic  string `json:"phonetic,omitempty"`
	AudioURL  string `json:"audio_url,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient wraps the dictionary endpoint, e.g.
// https://api.dictionaryapi.dev/api/v2/entries/en. The free service is
// rate limited, so keep requests gentle.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// entry mirrors the wire shape of api.dictionaryapi.dev.
type entry struct {
	Word      string   `json:"word"`
	Phonetic  string   `json:"phonetic"`
	Phonetics []struct {
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
	SourceUrls []string `json:"sourceUrls"`
}

func (c *Client) Lookup(ctx context.Context, word string) (*Definition, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, errors.New("word is required")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(word), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "dictionary request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoDefinition
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("dictionary returned status %d", resp.StatusCode)
	}

	var entries []entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, errors.Wrap(err, "failed to decode dictionary response")
	}
	if len(entries) == 0 {
		return nil, ErrNoDefinition
	}

	def := &Definition{
		Word:     entries[0].Word,
		Phonetic: entries[0].Phonetic,
	}
	for _, meaning := range entries[0].Meanings {
		if len(meaning.Definitions) > 0 {
			def.Meaning = meaning.Definitions[0].Definition
			break
		}
	}
	for _, phonetic := range entries[0].Phonetics {
		if phonetic.Audio != "" {
			def.AudioURL = phonetic.Audio
			break
		}
	}
	if len(entries[0].SourceUrls) > 0 {
		def.SourceURL = entries[0].SourceUrls[0]
	}

	if def.Meaning == "" {
		return nil, ErrNoDefinition
	}

	log.Debug("Dictionary lookup", zap.String("word", word))
	return def, nil
}
