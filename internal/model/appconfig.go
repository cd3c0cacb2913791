package model

import "time"

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Search bounds applied to every calculation
	MaxSearchNodes       int `json:"max_search_nodes"`       // 0 = unbounded
	SearchTimeoutSeconds int `json:"search_timeout_seconds"` // 0 = no timeout

	// Application preferences
	Theme       string   `json:"theme"` // "light", "dark", "system"
	RecentFiles []string `json:"recent_files"`
	LastTapes   []string `json:"last_tapes"` // raw entries restored on startup
}

// maxRecentFiles caps the recent files list.
const maxRecentFiles = 10

// DefaultAppConfig returns an AppConfig populated with defaults.
// Searches are unbounded unless the user opts in to limits.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		MaxSearchNodes:       0,
		SearchTimeoutSeconds: 0,
		Theme:                "system",
		RecentFiles:          []string{},
		LastTapes:            []string{},
	}
}

// SearchTimeout returns the configured timeout, or zero when disabled.
func (c AppConfig) SearchTimeout() time.Duration {
	if c.SearchTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.SearchTimeoutSeconds) * time.Second
}

// AddRecentFile moves path to the front of the recent files list.
func (c *AppConfig) AddRecentFile(path string) {
	files := []string{path}
	for _, f := range c.RecentFiles {
		if f != path {
			files = append(files, f)
		}
	}
	if len(files) > maxRecentFiles {
		files = files[:maxRecentFiles]
	}
	c.RecentFiles = files
}
