package readings

import (
	"time"
)

// Reading is one persisted sensor measurement. SensorType holds the raw label
// exactly as the device sent it; canonicalization is a lookup aid only. Rows
// are insert-only: AQI and severity are computed at write time and frozen.
// The (device_id, sensor_type, measured_at) triple is the natural key.
type Reading struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DeviceID       string    `gorm:"size:64;not null;uniqueIndex:uq_reading,priority:1;index:idx_readings_device_time,priority:1" json:"device_id"`
	SensorType     string    `gorm:"size:32;not null;uniqueIndex:uq_reading,priority:2" json:"sensor_type"`
	MeasuredAt     time.Time `gorm:"not null;uniqueIndex:uq_reading,priority:3;index:idx_readings_device_time,priority:2,sort:desc" json:"measured_at"`
	Value          float64   `gorm:"not null" json:"value"`
	AQI            *int      `json:"aqi"`
	Severity       string    `gorm:"size:8;not null;default:'none'" json:"severity"`
	APIKeyID       string    `gorm:"size:64" json:"-"`
	IdempotencyKey *string   `gorm:"size:64" json:"-"`
	CreatedAt      time.Time `json:"-"`
}

func (Reading) TableName() string { return "telemetry.readings" }

// IdempotencyRecord tracks one client-supplied idempotency key. Created
// in-progress on first sight; finalized to succeeded with the winning row's
// ID once the write commits. Never deleted here (expiry is out of scope).
type IdempotencyRecord struct {
	Key         string `gorm:"primaryKey;size:64"`
	RequestHash string `gorm:"size:64;not null"`
	Status      string `gorm:"size:16;not null"`
	ReadingID   *uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (IdempotencyRecord) TableName() string { return "telemetry.idempotency_keys" }

// PollutantThreshold holds the (warn, danger) concentration levels for a
// canonical-or-raw sensor type. Managed by operators (seeded from YAML);
// read-only at ingest time.
type PollutantThreshold struct {
	SensorType string  `gorm:"primaryKey;size:32" json:"sensor_type"`
	Warn       float64 `json:"warn"`
	Danger     float64 `json:"danger"`
}

func (PollutantThreshold) TableName() string { return "telemetry.pollutant_thresholds" }
