// Package session keeps the working task list between CLI invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/harrisonrobin/takt/pkg/model"
)

// ErrNoPlan is returned by Load when nothing has been imported yet.
var ErrNoPlan = errors.New("no plan loaded")

// Plan is a snapshot of the working task list. It is replaced as a whole on
// every change.
type Plan struct {
	ID        string       `json:"id"`
	Source    string       `json:"source"`
	UpdatedAt time.Time    `json:"updated_at"`
	Tasks     []model.Task `json:"tasks"`
}

// SamplePlanID is the fixed id of the built-in sample plan, saved or not.
const SamplePlanID = "sample"

// SamplePlan returns the built-in sample tasks under SamplePlanID.
func SamplePlan() *Plan {
	return &Plan{
		ID:        SamplePlanID,
		Source:    "sample",
		UpdatedAt: time.Now().UTC(),
		Tasks:     model.SampleTasks(),
	}
}

// Reimport returns the plan holding tasks imported from source. When prev
// came from the same source its id is kept, so events pushed from it are
// updated instead of duplicated. prev may be nil.
func Reimport(prev *Plan, source string, tasks []model.Task) *Plan {
	if prev != nil && prev.Source == source {
		return prev.WithTasks(tasks)
	}
	return NewPlan(source, tasks)
}

// NewPlan starts a plan with a fresh id.
func NewPlan(source string, tasks []model.Task) *Plan {
	return &Plan{
		ID:        uuid.NewString(),
		Source:    source,
		UpdatedAt: time.Now().UTC(),
		Tasks:     tasks,
	}
}

// WithTasks returns a copy of p holding tasks.
func (p *Plan) WithTasks(tasks []model.Task) *Plan {
	next := *p
	next.Tasks = tasks
	next.UpdatedAt = time.Now().UTC()
	return &next
}

// Store reads and writes a plan file.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) Load() (*Plan, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNoPlan, s.Path)
		}
		return nil, err
	}
	defer f.Close()

	var p Plan
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode plan %s: %w", s.Path, err)
	}
	if p.Tasks == nil {
		p.Tasks = []model.Task{}
	}
	return &p, nil
}

// Save writes p to a temporary file and renames it over the plan file, so a
// reader never sees a partial plan.
func (s *Store) Save(p *Plan) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create plan directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".takt-plan-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp plan: %w", err)
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(p); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
