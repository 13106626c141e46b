package devices

import (
	"time"

	"github.com/lib/pq"
)

// Device is a registered sensor unit. LastSeenAt advances when readings
// arrive; it only moves forward even if readings land out of order.
type Device struct {
	DeviceID   string         `gorm:"primaryKey;size:64" json:"device_id"`
	Name       string         `gorm:"size:128;not null" json:"name"`
	Location   *string        `gorm:"size:255" json:"location,omitempty"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	LastSeenAt *time.Time     `json:"last_seen_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (Device) TableName() string { return "registry.devices" }
