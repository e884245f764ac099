package config

import (
	"fmt"
	"os"
)

// Template returns a starter job file.
func Template() string {
	return jobTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(jobTemplate), 0o600)
}

const jobTemplate = `# Relative paths resolve against this file's directory.
path = "src/pages/admin/AdminDashboard.vue"
start_marker = '<script setup lang="ts">'
end_marker = "</script>"
replacement_file = "AdminDashboard.script.ts"
encoding = "utf-8"
dry_run = false
# metrics_textfile = "/var/lib/node_exporter/textfile/splicectl.prom"
`
