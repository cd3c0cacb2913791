package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/TapePlanner/internal/model"
)

// FileExtension is the extension used for saved tape lists.
const FileExtension = ".tapes"

// Save writes a tape list to path as JSON.
func Save(path string, list model.TapeList) error {
	if list.Tapes == nil {
		list.Tapes = []model.Tape{}
	}
	return writeJSON(path, list)
}

// Load reads a tape list from path. Tapes without an ID get a fresh one.
func Load(path string) (model.TapeList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.TapeList{}, fmt.Errorf("failed to read tape list: %w", err)
	}
	var list model.TapeList
	if err := json.Unmarshal(data, &list); err != nil {
		return model.TapeList{}, fmt.Errorf("failed to parse tape list: %w", err)
	}
	if list.Tapes == nil {
		list.Tapes = []model.Tape{}
	}
	for i, t := range list.Tapes {
		if t.ID == "" {
			fresh := model.NewTape(t.Raw)
			fresh.Label = t.Label
			list.Tapes[i] = fresh
		}
	}
	if list.Name == "" {
		list.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return list, nil
}

