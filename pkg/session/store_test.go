package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/takt/pkg/model"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "plan.json"))

	plan := NewPlan("sample", model.SampleTasks())
	_, err := uuid.Parse(plan.ID)
	require.NoError(t, err)

	require.NoError(t, store.Save(plan))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, plan.ID, loaded.ID)
	assert.Equal(t, "sample", loaded.Source)
	assert.Equal(t, plan.Tasks, loaded.Tasks)
	assert.True(t, plan.UpdatedAt.Equal(loaded.UpdatedAt))

	entries, err := os.ReadDir(filepath.Dir(store.Path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be cleaned up")
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "plan.json"))
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoPlan)
}

func TestStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := NewStore(path).Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoPlan)
}

func TestStoreLoadEmptyTasks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"x"}`), 0o644))
	p, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.NotNil(t, p.Tasks)
	assert.Empty(t, p.Tasks)
}

func TestWithTasksLeavesOriginal(t *testing.T) {
	plan := NewPlan("sample", model.SampleTasks())
	edited, err := model.SetField(plan.Tasks, 0, "trade", "Framer")
	require.NoError(t, err)

	next := plan.WithTasks(edited)
	assert.Equal(t, plan.ID, next.ID)
	assert.Equal(t, "Framer", next.Tasks[0].Trade)
	assert.Equal(t, "Carpenter", plan.Tasks[0].Trade)
}

func TestSamplePlanIDIsStable(t *testing.T) {
	first, second := SamplePlan(), SamplePlan()
	assert.Equal(t, SamplePlanID, first.ID)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.SampleTasks(), first.Tasks)
}

func TestReimport(t *testing.T) {
	prev := NewPlan("tower.xml", model.SampleTasks())
	tasks := []model.Task{{ID: "1", Name: "Frame wall"}}

	same := Reimport(prev, "tower.xml", tasks)
	assert.Equal(t, prev.ID, same.ID)
	assert.Equal(t, tasks, same.Tasks)

	other := Reimport(prev, "annex.xml", tasks)
	assert.NotEqual(t, prev.ID, other.ID)
	assert.Equal(t, "annex.xml", other.Source)

	fresh := Reimport(nil, "tower.xml", tasks)
	assert.NotEqual(t, prev.ID, fresh.ID)
}
