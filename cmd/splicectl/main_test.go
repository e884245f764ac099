package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/splicectl/internal/testutil/testlog"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestApplyFromFlags(t *testing.T) {
	testlog.Start(t)
	path := writeFile(t, t.TempDir(), "a.html", "A<script>OLD</script>B")

	var out bytes.Buffer
	code := run([]string{"-f", path, "-s", "<script>", "-e", "</script>", "apply", "-r", "NEW"}, &out)
	if code != exitOK {
		t.Fatalf("exit code %d", code)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "A<script>NEW</script>B" {
		t.Fatalf("unexpected file: %q", data)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
}

func TestApplyDryRunPrintsDocument(t *testing.T) {
	testlog.Start(t)
	path := writeFile(t, t.TempDir(), "a.html", "A<script>OLD</script>B")

	var out bytes.Buffer
	code := run([]string{"--file", path, "--start", "<script>", "--end", "</script>", "apply", "--replacement", "", "--dry-run"}, &out)
	if code != exitOK {
		t.Fatalf("exit code %d", code)
	}
	if out.String() != "A<script></script>B" {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "A<script>OLD</script>B" {
		t.Fatalf("dry run modified file: %q", data)
	}
}

func TestApplyFromConfigWithMetrics(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "page.vue", "<template/>\n<script setup lang=\"ts\">old</script>\n")
	writeFile(t, dir, "page.script.ts", "\nconst x = 1;\n")
	cfg := writeFile(t, dir, "job.toml", `
path = "page.vue"
start_marker = '<script setup lang="ts">'
end_marker = "</script>"
replacement_file = "page.script.ts"
`)
	metrics := filepath.Join(dir, "splicectl.prom")

	code := run([]string{"-c", cfg, "apply", "--metrics-textfile", metrics}, &bytes.Buffer{})
	if code != exitOK {
		t.Fatalf("exit code %d", code)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "<template/>\n<script setup lang=\"ts\">\nconst x = 1;\n</script>\n" {
		t.Fatalf("unexpected file: %q", data)
	}
	prom, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics textfile: %v", err)
	}
	if !strings.Contains(string(prom), "splicectl_splice_total") {
		t.Fatalf("unexpected metrics:\n%s", prom)
	}
}

func TestApplyMissingMarkerFails(t *testing.T) {
	testlog.Start(t)
	path := writeFile(t, t.TempDir(), "plain.txt", "no markers here")

	code := run([]string{"-f", path, "-s", "<script>", "-e", "</script>", "apply", "-r", "x"}, &bytes.Buffer{})
	if code != exitFailure {
		t.Fatalf("exit code %d, want %d", code, exitFailure)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "no markers here" {
		t.Fatalf("file modified: %q", data)
	}
}

func TestUsageErrors(t *testing.T) {
	testlog.Start(t)
	path := writeFile(t, t.TempDir(), "a.html", "A<script>OLD</script>B")
	cases := map[string][]string{
		"no command":        {"-f", path},
		"no replacement":    {"-f", path, "-s", "<script>", "-e", "</script>", "apply"},
		"both replacements": {"-f", path, "-s", "<script>", "-e", "</script>", "apply", "-r", "x", "-R", "y.txt"},
		"unknown encoding":  {"-f", path, "-s", "<script>", "-e", "</script>", "--encoding", "ebcdic", "show"},
		"unknown flag":      {"--bogus", "show"},
		"extra args":        {"-f", path, "-s", "<script>", "-e", "</script>", "show", "extra"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if code := run(args, &bytes.Buffer{}); code != exitUsage {
				t.Fatalf("exit code %d, want %d", code, exitUsage)
			}
		})
	}
}

func TestShowPrintsSection(t *testing.T) {
	testlog.Start(t)
	path := writeFile(t, t.TempDir(), "a.html", "A<script>OLD</script>B")

	var out bytes.Buffer
	if code := run([]string{"-f", path, "-s", "<script>", "-e", "</script>", "show"}, &out); code != exitOK {
		t.Fatalf("exit code %d", code)
	}
	if out.String() != "OLD" {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
}

func TestHelp(t *testing.T) {
	testlog.Start(t)
	var out bytes.Buffer
	if code := run([]string{"--help"}, &out); code != exitOK {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out.String(), "apply") {
		t.Fatalf("help missing commands: %q", out.String())
	}
}
