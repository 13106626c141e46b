package seeds_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aeris-iot/aeris-backend/internal/seeds"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp yaml: %v", err)
	}
	return path
}

// TestLoadThresholds parses a valid file and checks the parsed values.
func TestLoadThresholds(t *testing.T) {
	path := writeTempYAML(t, `
thresholds:
  - sensor_type: pm25
    warn: 35.5
    danger: 150.5
  - sensor_type: voc_index
    warn: 250
    danger: 400
`)

	thresholds, err := seeds.LoadThresholds(path)
	if err != nil {
		t.Fatalf("LoadThresholds: %v", err)
	}
	if len(thresholds) != 2 {
		t.Fatalf("expected 2 thresholds, got %d", len(thresholds))
	}
	if thresholds[0].SensorType != "pm25" || thresholds[0].Warn != 35.5 || thresholds[0].Danger != 150.5 {
		t.Errorf("unexpected first threshold: %+v", thresholds[0])
	}
	if thresholds[1].SensorType != "voc_index" || thresholds[1].Warn != 250 || thresholds[1].Danger != 400 {
		t.Errorf("unexpected second threshold: %+v", thresholds[1])
	}
}

// TestLoadThresholds_Invalid rejects empty sensor types and inverted levels.
func TestLoadThresholds_Invalid(t *testing.T) {
	path := writeTempYAML(t, `
thresholds:
  - sensor_type: ""
    warn: 1
    danger: 2
`)
	if _, err := seeds.LoadThresholds(path); err == nil {
		t.Error("expected error for empty sensor_type")
	}

	path = writeTempYAML(t, `
thresholds:
  - sensor_type: pm25
    warn: 10
    danger: 5
`)
	if _, err := seeds.LoadThresholds(path); err == nil {
		t.Error("expected error for danger below warn")
	}

	if _, err := seeds.LoadThresholds(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestLoadThresholds_RepoFile parses the checked-in seed file.
func TestLoadThresholds_RepoFile(t *testing.T) {
	thresholds, err := seeds.LoadThresholds("../../seeds/thresholds.yaml")
	if err != nil {
		t.Fatalf("LoadThresholds on repo seed file: %v", err)
	}
	if len(thresholds) == 0 {
		t.Fatal("repo seed file has no thresholds")
	}
}
