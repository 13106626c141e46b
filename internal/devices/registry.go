package devices

import (
	"time"

	"github.com/aeris-iot/aeris-backend/internal/db"
)

// RegistryInfo is the DB-backed registry collaborator handed to the readings
// module (readings.DeviceRegistry).
type RegistryInfo struct{}

func (RegistryInfo) Exists(deviceID string) (bool, error) {
	var count int64
	err := db.DB.Model(&Device{}).Where("device_id = ?", deviceID).Count(&count).Error
	return count > 0, err
}

// TouchLastSeen advances last_seen_at to at, but never backward.
func (RegistryInfo) TouchLastSeen(deviceID string, at time.Time) error {
	return db.DB.Model(&Device{}).
		Where("device_id = ? AND (last_seen_at IS NULL OR last_seen_at < ?)", deviceID, at).
		Update("last_seen_at", at).Error
}
