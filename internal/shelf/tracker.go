package shelf

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/log"
)

const stateFileName = "shelf.json"

// Tracker is the explicit state store for shelf membership: every change
// goes through Reduce and is flushed to disk before the new state is
// visible.
type Tracker struct {
	mu    sync.Mutex
	path  string
	state State
}

// NewTracker loads the shelf state from dataDir. A missing or corrupt
// state file degrades to an empty shelf rather than failing startup.
func NewTracker(dataDir string) *Tracker {
	t := &Tracker{
		path:  filepath.Join(dataDir, stateFileName),
		state: emptyState(),
	}

	raw, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("Failed to read shelf state, starting empty", zap.Error(err))
		}
		return t
	}
	if err := json.Unmarshal(raw, &t.state); err != nil {
		log.Warn("Corrupt shelf state, starting empty", zap.String("path", t.path), zap.Error(err))
		t.state = emptyState()
	}
	return t
}

// Apply reduces one action and persists the result.
func (t *Tracker) Apply(action Action) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := Reduce(t.state, action)
	if err := t.save(next); err != nil {
		return clone(t.state), err
	}
	t.state = next
	return clone(t.state), nil
}

// State returns a copy of the current shelves.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return clone(t.state)
}

func (t *Tracker) save(state State) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	// Write-then-rename so a crash mid-write cannot corrupt the file.
	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, t.path)
}
