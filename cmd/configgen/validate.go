package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/splicectl/internal/config"
)

// validateJobFile rejects unknown keys, which the loader silently ignores,
// then runs the loader's own validation.
func validateJobFile(path string) error {
	var raw config.Job
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("decode job file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if meta.IsDefined("replacement") && strings.TrimSpace(raw.ReplacementFile) != "" {
		return config.ErrReplacementConflict
	}

	job, err := config.LoadJob(path)
	if err != nil {
		return err
	}
	return job.Validate(true)
}
