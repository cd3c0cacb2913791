package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/TapePlanner/internal/model"
)

// backupVersion is written into every backup file.
const backupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string           `json:"version"`
	CreatedAt string           `json:"created_at"`
	Config    model.AppConfig  `json:"config"`
	Lists     []model.TapeList `json:"lists"`
}

// ExportAllData writes the config and the given tape lists to a single
// JSON file at exportPath.
func ExportAllData(exportPath string, config model.AppConfig, lists ...model.TapeList) error {
	if lists == nil {
		lists = []model.TapeList{}
	}
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Lists:     lists,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to export backup: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	backup.Config = normalizeConfig(backup.Config)
	if backup.Lists == nil {
		backup.Lists = []model.TapeList{}
	}
	return backup, nil
}
