package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/splicectl/internal/document"
)

var ErrReplacementConflict = errors.New("replacement and replacement_file are mutually exclusive")

// Job describes one splice of one artifact.
type Job struct {
	Path            string `toml:"path"`
	StartMarker     string `toml:"start_marker"`
	EndMarker       string `toml:"end_marker"`
	Replacement     string `toml:"replacement,omitempty"`
	ReplacementFile string `toml:"replacement_file,omitempty"`
	Encoding        string `toml:"encoding,omitempty"`
	DryRun          bool   `toml:"dry_run,omitempty"`
	MetricsTextfile string `toml:"metrics_textfile,omitempty"`

	// hasReplacement is set when replacement was given explicitly, so an
	// empty replacement (clear the section) is distinguishable from none.
	hasReplacement bool
}

func (j Job) HasReplacement() bool {
	return j.hasReplacement || j.Replacement != ""
}

// SetReplacement marks the replacement as explicitly provided, even if empty.
func (j *Job) SetReplacement(text string) {
	j.Replacement = text
	j.hasReplacement = true
}

// LoadJob reads a TOML job file. replacement_file is resolved against the
// job file's directory.
func LoadJob(path string) (Job, error) {
	var job Job
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	var keys map[string]any
	if err := toml.Unmarshal(data, &keys); err == nil {
		_, job.hasReplacement = keys["replacement"]
	}
	dir := filepath.Dir(path)
	if job.ReplacementFile != "" && job.ReplacementFile != "-" && !isURL(job.ReplacementFile) && !filepath.IsAbs(job.ReplacementFile) {
		job.ReplacementFile = filepath.Join(dir, job.ReplacementFile)
	}
	if job.Path != "" && !isURL(job.Path) && !filepath.IsAbs(job.Path) {
		job.Path = filepath.Join(dir, job.Path)
	}
	return job, nil
}

// Merge overlays the non-zero fields of override onto j.
func (j Job) Merge(override Job) Job {
	out := j
	if override.Path != "" {
		out.Path = override.Path
	}
	if override.StartMarker != "" {
		out.StartMarker = override.StartMarker
	}
	if override.EndMarker != "" {
		out.EndMarker = override.EndMarker
	}
	if override.HasReplacement() || override.ReplacementFile != "" {
		out.Replacement = override.Replacement
		out.hasReplacement = override.HasReplacement()
		out.ReplacementFile = override.ReplacementFile
	}
	if override.Encoding != "" {
		out.Encoding = override.Encoding
	}
	if override.DryRun {
		out.DryRun = true
	}
	if override.MetricsTextfile != "" {
		out.MetricsTextfile = override.MetricsTextfile
	}
	return out
}

// WithDefaults fills the encoding and normalizes it to its canonical name.
func (j Job) WithDefaults() (Job, error) {
	name, err := document.CanonicalEncoding(j.Encoding)
	if err != nil {
		return Job{}, err
	}
	j.Encoding = name
	return j, nil
}

// Validate checks the fields needed before any read happens. requireReplacement
// is false for read-only commands.
func (j Job) Validate(requireReplacement bool) error {
	if strings.TrimSpace(j.Path) == "" {
		return fmt.Errorf("job missing path")
	}
	if j.StartMarker == "" {
		return fmt.Errorf("job missing start_marker")
	}
	if j.EndMarker == "" {
		return fmt.Errorf("job missing end_marker")
	}
	if _, err := document.CanonicalEncoding(j.Encoding); err != nil {
		return err
	}
	if !requireReplacement {
		return nil
	}
	if j.HasReplacement() && j.ReplacementFile != "" {
		return ErrReplacementConflict
	}
	if !j.HasReplacement() && j.ReplacementFile == "" {
		return fmt.Errorf("job missing replacement or replacement_file")
	}
	return nil
}

func isURL(location string) bool {
	return strings.Contains(location, "://")
}
