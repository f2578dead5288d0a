package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bookgrab/bookgrab/internal/model"
	"github.com/bookgrab/bookgrab/internal/transport"
)

// Settings holds all configuration options.
type Settings struct {
	// Dest is the directory downloads are filed under.
	Dest string `json:"dest"`

	// Formats lists the requested output formats: "pdf", "cbz".
	Formats []string `json:"formats"`

	// KeepImages leaves the per-page image directory in place after
	// the output documents have been assembled.
	KeepImages bool `json:"keep_images"`

	// SkipImageDownload stops after metadata and page discovery,
	// without fetching any page images.
	SkipImageDownload bool `json:"skip_image_download"`

	// ArchiveFile is the path of the append-only ledger of
	// completed document ids. Empty disables cross-run tracking.
	ArchiveFile string `json:"archive_file"`

	// DownloadAttempts caps retries per network fetch.
	// 0 retries indefinitely.
	DownloadAttempts uint `json:"download_attempts"`

	// RetryDelaySeconds is the backoff base delay between retries.
	RetryDelaySeconds float64 `json:"retry_delay_seconds"`

	// MaxConcurrentIssues bounds how many issues of a period are
	// downloaded in parallel during batch runs.
	MaxConcurrentIssues int `json:"max_concurrent_issues"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Dest:                ".",
		Formats:             []string{"pdf"},
		DownloadAttempts:    5,
		RetryDelaySeconds:   1.0,
		MaxConcurrentIssues: 1,
	}
}

// Load reads settings from a JSON file, falling back to defaults for
// a missing file. Values absent from the file keep their defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	if _, err := settings.FormatSet(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FormatSet converts the configured format names into a set.
func (s *Settings) FormatSet() (model.FormatSet, error) {
	set := make(model.FormatSet)
	for _, name := range s.Formats {
		parsed, err := model.ParseFormatSet(name)
		if err != nil {
			return nil, err
		}
		for f := range parsed {
			set[f] = struct{}{}
		}
	}
	return set, nil
}

// RetryPolicy converts the attempt and delay settings into a
// transport policy. The file format uses 0 for "retry indefinitely";
// the policy represents that as an absent cap.
func (s *Settings) RetryPolicy() transport.RetryPolicy {
	delay := time.Duration(s.RetryDelaySeconds * float64(time.Second))
	if delay <= 0 {
		delay = time.Second
	}
	policy := transport.RetryPolicy{
		Delay:    delay,
		MaxDelay: 30 * time.Second,
	}
	if s.DownloadAttempts > 0 {
		attempts := s.DownloadAttempts
		policy.Attempts = &attempts
	}
	return policy
}
