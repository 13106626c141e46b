package seeds

import (
	"fmt"
	"log"
	"os"

	"github.com/aeris-iot/aeris-backend/internal/db"
	"github.com/aeris-iot/aeris-backend/internal/readings"
	"github.com/goccy/go-yaml"
	"gorm.io/gorm/clause"
)

type thresholdFile struct {
	Thresholds []struct {
		SensorType string  `yaml:"sensor_type"`
		Warn       float64 `yaml:"warn"`
		Danger     float64 `yaml:"danger"`
	} `yaml:"thresholds"`
}

// LoadThresholds parses an operator-maintained YAML file of (warn, danger)
// levels keyed by sensor type.
func LoadThresholds(path string) ([]readings.PollutantThreshold, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var file thresholdFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := make([]readings.PollutantThreshold, 0, len(file.Thresholds))
	for _, th := range file.Thresholds {
		if th.SensorType == "" {
			return nil, fmt.Errorf("%s: threshold with empty sensor_type", path)
		}
		if th.Danger < th.Warn {
			return nil, fmt.Errorf("%s: %s has danger below warn", path, th.SensorType)
		}
		out = append(out, readings.PollutantThreshold{
			SensorType: th.SensorType,
			Warn:       th.Warn,
			Danger:     th.Danger,
		})
	}
	return out, nil
}

// SeedThresholds upserts the threshold table from the YAML file; re-running
// picks up edited levels.
func SeedThresholds(path string) error {
	thresholds, err := LoadThresholds(path)
	if err != nil {
		return err
	}

	for _, th := range thresholds {
		err := db.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sensor_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"warn", "danger"}),
		}).Create(&th).Error
		if err != nil {
			return fmt.Errorf("seed threshold %s: %w", th.SensorType, err)
		}
	}

	log.Printf("Seeded %d pollutant thresholds", len(thresholds))
	return nil
}
