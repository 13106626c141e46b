package devices

import (
	"encoding/json"
	"net/http"

	"github.com/aeris-iot/aeris-backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
)

// RegisterDeviceHandler upserts a device: update if it exists, otherwise create.
func RegisterDeviceHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		DeviceID string   `json:"device_id"`
		Name     string   `json:"name"`
		Location *string  `json:"location"`
		Tags     []string `json:"tags"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.DeviceID == "" || input.Name == "" {
		http.Error(w, "device_id and name are required", http.StatusBadRequest)
		return
	}

	var existing Device
	err := db.DB.First(&existing, "device_id = ?", input.DeviceID).Error
	if err == nil {
		updates := map[string]any{
			"name":     input.Name,
			"location": input.Location,
		}
		if input.Tags != nil {
			updates["tags"] = pq.StringArray(input.Tags)
		}
		if err := db.DB.Model(&existing).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update device", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "updated": true, "device_id": existing.DeviceID})
		return
	}

	device := Device{
		DeviceID: input.DeviceID,
		Name:     input.Name,
		Location: input.Location,
		Tags:     pq.StringArray(input.Tags),
	}
	if err := db.DB.Create(&device).Error; err != nil {
		http.Error(w, "Failed to register device", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"ok": true, "created": true, "device_id": device.DeviceID})
}

func ListDevicesHandler(w http.ResponseWriter, r *http.Request) {
	var list []Device

	query := db.DB.Order("device_id ASC")
	if tag := r.URL.Query().Get("tag"); tag != "" {
		query = query.Where("? = ANY(tags)", tag)
	}

	if err := query.Find(&list).Error; err != nil {
		http.Error(w, "Failed to fetch devices: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func GetDeviceHandler(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "device_id")

	var device Device
	if err := db.DB.First(&device, "device_id = ?", deviceID).Error; err != nil {
		http.Error(w, "Device not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(device)
}

func DeleteDeviceHandler(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "device_id")

	var device Device
	if err := db.DB.First(&device, "device_id = ?", deviceID).Error; err != nil {
		http.Error(w, "Device not found", http.StatusNotFound)
		return
	}

	if err := db.DB.Delete(&device).Error; err != nil {
		http.Error(w, "Failed to delete device", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": true, "deleted": true, "device_id": deviceID})
}
