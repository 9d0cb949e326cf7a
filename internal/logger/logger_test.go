package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuildLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		debugOn bool
	}{
		{name: "console info", opts: Options{}},
		{name: "json debug", opts: Options{JSON: true, Debug: true}, debugOn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.opts.Output = filepath.Join(t.TempDir(), "out.log")
			log, err := Build(tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.debugOn {
				t.Fatalf("debug enabled = %v, want %v", got, tt.debugOn)
			}
			if !log.Core().Enabled(zapcore.InfoLevel) {
				t.Fatalf("info must always be enabled")
			}
		})
	}
}

func TestBuildJSONEntry(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.log")
	log, err := Build(Options{JSON: true, Output: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Named("matching").Info("filter step", zap.Int("remaining", 3))
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(raw, &entry); err != nil {
		t.Fatalf("decoding %q: %v", raw, err)
	}

	got := map[string]any{
		"step":      entry["step"],
		"level":     entry["level"],
		"app":       entry["app"],
		"component": entry["component"],
		"remaining": entry["remaining"],
	}
	want := map[string]any{
		"step":      "filter step",
		"level":     "info",
		"app":       "hiring-dna",
		"component": "matching",
		"remaining": float64(3),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected entry (-want +got):\n%s", diff)
	}
	for _, key := range []string{"time", "caller"} {
		if _, ok := entry[key]; !ok {
			t.Fatalf("entry is missing %q: %s", key, raw)
		}
	}
}
