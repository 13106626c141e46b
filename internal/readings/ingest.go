package readings

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aeris-iot/aeris-backend/internal/aqi"
	"github.com/aeris-iot/aeris-backend/internal/db"
	"github.com/aeris-iot/aeris-backend/internal/metrics"
	"gorm.io/gorm"
)

var (
	ErrDeviceNotFound      = errors.New("device not found")
	ErrIdempotencyConflict = errors.New("idempotency key reused with a different payload")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// DeviceRegistry is the registry collaborator: ingestion only asks whether a
// device exists and bumps its last-seen timestamp. devices.RegistryInfo is
// the production implementation.
type DeviceRegistry interface {
	Exists(deviceID string) (bool, error)
	TouchLastSeen(deviceID string, at time.Time) error
}

type IngestInput struct {
	DeviceID       string
	SensorType     string
	MeasuredAt     time.Time
	Value          float64
	APIKeyID       string
	IdempotencyKey string // empty when the client sent none
}

type IngestResult struct {
	Reading  Reading
	Category string
	// Created is false on idempotent replay and natural-key duplicate.
	Created bool
}

// Ingest runs the full pipeline for one submission: idempotency guard, AQI
// and severity evaluation, insert, and natural-key conflict resolution.
// Duplicate submissions converge to one stored row whether or not an
// idempotency key is involved.
func Ingest(registry DeviceRegistry, in IngestInput) (*IngestResult, error) {
	exists, err := registry.Exists(in.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !exists {
		return nil, ErrDeviceNotFound
	}

	if in.IdempotencyKey != "" {
		hash := Fingerprint(in.DeviceID, in.SensorType, in.MeasuredAt, in.Value)
		outcome, readingID, err := Begin(db.DB, in.IdempotencyKey, hash)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		switch outcome {
		case BeginMismatch:
			metrics.IdempotencyConflicts.Inc()
			return nil, ErrIdempotencyConflict
		case BeginReplay:
			var prior Reading
			if err := db.DB.First(&prior, "id = ?", *readingID).Error; err != nil {
				return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
			metrics.IdempotencyReplays.Inc()
			return &IngestResult{
				Reading:  prior,
				Category: aqi.CategoryForAQI(prior.SensorType, prior.AQI),
				Created:  false,
			}, nil
		}
		// BeginFresh or BeginRetry: proceed to write.
	}

	// The stored sensor_type stays exactly as sent; canonicalization only
	// selects the AQI table and threshold row.
	aqiVal, _ := aqi.Compute(in.SensorType, in.Value)
	severity := EvaluateSeverity(aqiVal, in.Value, lookupThreshold(in.SensorType))

	row := Reading{
		DeviceID:   in.DeviceID,
		SensorType: in.SensorType,
		MeasuredAt: in.MeasuredAt,
		Value:      in.Value,
		AQI:        aqiVal,
		Severity:   severity.String(),
		APIKeyID:   in.APIKeyID,
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		row.IdempotencyKey = &key
	}

	stored, created, err := createReading(&row)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		if err := Finalize(db.DB, in.IdempotencyKey, stored.ID); err != nil {
			// The reading is durable; a dangling in-progress record only
			// means a later replay takes the retry path.
			log.Printf("finalize idempotency key failed: %v", err)
		}
	}

	if created {
		metrics.ReadingsIngested.WithLabelValues(aqi.CategoryForAQI(stored.SensorType, stored.AQI), stored.Severity).Inc()
		if err := registry.TouchLastSeen(in.DeviceID, in.MeasuredAt); err != nil {
			log.Printf("touch last_seen failed for %s: %v", in.DeviceID, err)
		}
	} else {
		metrics.DuplicateReadings.Inc()
	}

	// Category is always derived from the stored AQI, including on the
	// duplicate path, so label changes never require a backfill.
	return &IngestResult{
		Reading:  *stored,
		Category: aqi.CategoryForAQI(stored.SensorType, stored.AQI),
		Created:  created,
	}, nil
}

// createReading inserts row, resolving a natural-key collision by reading
// back the row that won. The duplicate branch is an explicit variant, not an
// error: the caller decides the response code from created.
func createReading(row *Reading) (*Reading, bool, error) {
	err := db.DB.Create(row).Error
	if err == nil {
		return row, true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		// Transient store failures must surface as retryable, never be
		// mistaken for the benign duplicate path.
		return nil, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var existing Reading
	err = db.DB.First(&existing,
		"device_id = ? AND sensor_type = ? AND measured_at = ?",
		row.DeviceID, row.SensorType, row.MeasuredAt).Error
	if err != nil {
		return nil, false, fmt.Errorf("%w: duplicate reading but existing row not found: %v", ErrStoreUnavailable, err)
	}
	return &existing, false, nil
}

// lookupThreshold fetches the threshold row for the canonical pollutant when
// the label resolves, else for the raw label itself. Missing rows are simply
// no threshold.
func lookupThreshold(sensorType string) *PollutantThreshold {
	key := sensorType
	if p, ok := aqi.Canonical(sensorType); ok {
		key = p.String()
	}

	var threshold PollutantThreshold
	if err := db.DB.First(&threshold, "sensor_type = ?", key).Error; err != nil {
		return nil
	}
	return &threshold
}
