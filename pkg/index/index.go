package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// EventIndex remembers which calendar event holds each pushed task, keyed by
// plan id and task id.
type EventIndex struct {
	Mappings map[string]string `json:"mappings"`
	Path     string            `json:"-"`
	mu       sync.RWMutex
	dirty    bool
}

// Key joins a plan id and a task id. Task ids are only unique within a plan.
func Key(planID, taskID string) string {
	return planID + "/" + taskID
}

// NewEventIndex opens the index at ~/.config/takt/events.json.
func NewEventIndex() (*EventIndex, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return OpenEventIndex(filepath.Join(home, ".config", "takt", "events.json"))
}

// OpenEventIndex loads path if it exists.
func OpenEventIndex(path string) (*EventIndex, error) {
	idx := &EventIndex{
		Mappings: make(map[string]string),
		Path:     path,
	}
	if _, err := os.Stat(path); err == nil {
		if err := idx.Load(); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (idx *EventIndex) Load() error {
	f, err := os.Open(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	idx.mu.Lock()
	defer idx.mu.Unlock()
	return json.NewDecoder(f).Decode(&idx.Mappings)
}

// Save writes the index if it changed since the last Save.
func (idx *EventIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.dirty {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(idx.Path), 0700); err != nil {
		return err
	}
	f, err := os.Create(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(idx.Mappings); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

func (idx *EventIndex) Get(planID, taskID string) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.Mappings[Key(planID, taskID)]
}

func (idx *EventIndex) Set(planID, taskID, eventID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	key := Key(planID, taskID)
	if idx.Mappings[key] != eventID {
		idx.Mappings[key] = eventID
		idx.dirty = true
	}
}

func (idx *EventIndex) Remove(planID, taskID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	key := Key(planID, taskID)
	if _, exists := idx.Mappings[key]; exists {
		delete(idx.Mappings, key)
		idx.dirty = true
	}
}
