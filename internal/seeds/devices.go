package seeds

import (
	"log"

	"github.com/aeris-iot/aeris-backend/internal/db"
	"github.com/aeris-iot/aeris-backend/internal/devices"
	"github.com/lib/pq"
)

func strPtr(s string) *string { return &s }

// SeedDevices registers a couple of demo devices for local development.
func SeedDevices() error {
	demo := []devices.Device{
		{
			DeviceID: "demo-balcony",
			Name:     "Balcony sensor",
			Location: strPtr("Balcony, south side"),
			Tags:     pq.StringArray{"demo", "outdoor"},
		},
		{
			DeviceID: "demo-kitchen",
			Name:     "Kitchen sensor",
			Location: strPtr("Kitchen"),
			Tags:     pq.StringArray{"demo", "indoor"},
		},
	}

	for _, d := range demo {
		if err := db.DB.FirstOrCreate(&d, devices.Device{DeviceID: d.DeviceID}).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d demo devices", len(demo))
	return nil
}
