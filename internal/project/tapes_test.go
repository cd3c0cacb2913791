package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TapePlanner/internal/model"
)

func TestSaveAndLoadTapeList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch"+FileExtension)

	list := model.NewTapeList()
	list.Name = "Week 42"
	list.Tapes = append(list.Tapes, model.NewTape("600"), model.NewTape("361"))
	list.Tapes[0].Label = "Reel 1"

	require.NoError(t, Save(path, list))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, list, loaded)
	assert.Equal(t, []string{"600", "361"}, loaded.RawEntries())
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.tapes")
	data := `{"tapes":[{"raw":"661.5","label":"A"},{"id":"keep","raw":"600"}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Tapes, 2)
	assert.NotEmpty(t, loaded.Tapes[0].ID)
	assert.Equal(t, "A", loaded.Tapes[0].Label)
	assert.Equal(t, "661.5", loaded.Tapes[0].Raw)
	assert.Equal(t, "keep", loaded.Tapes[1].ID)
	assert.Equal(t, "legacy", loaded.Name, "name falls back to file name")
}

func TestSaveNilTapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.tapes")
	require.NoError(t, Save(path, model.TapeList{Name: "empty"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tapes": []`)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, loaded.Tapes)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.tapes"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.tapes")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}
