package readings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aeris-iot/aeris-backend/internal/aqi"
	"github.com/aeris-iot/aeris-backend/internal/db"
	"github.com/aeris-iot/aeris-backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// ReadingOut is the wire shape for a persisted reading. AQICategory is
// recomputed from the stored AQI on every response.
type ReadingOut struct {
	ID          uint64    `json:"id"`
	DeviceID    string    `json:"device_id"`
	SensorType  string    `json:"sensor_type"`
	MeasuredAt  time.Time `json:"measured_at"`
	Value       float64   `json:"value"`
	AQI         *int      `json:"aqi"`
	AQICategory string    `json:"aqi_category"`
	Severity    string    `json:"severity"`
}

func toReadingOut(r Reading, category string) ReadingOut {
	return ReadingOut{
		ID:          r.ID,
		DeviceID:    r.DeviceID,
		SensorType:  r.SensorType,
		MeasuredAt:  r.MeasuredAt,
		Value:       r.Value,
		AQI:         r.AQI,
		AQICategory: category,
		Severity:    r.Severity,
	}
}

// CreateReadingHandler ingests one reading. 201 on fresh creation, 200 on
// idempotent replay or natural-key duplicate, 404 for an unknown device, 409
// when the idempotency key was reused with a different payload.
func CreateReadingHandler(registry DeviceRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			DeviceID   string    `json:"device_id"`
			SensorType string    `json:"sensor_type"`
			MeasuredAt time.Time `json:"measured_at"`
			Value      float64   `json:"value"`
		}

		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if input.DeviceID == "" || input.SensorType == "" || input.MeasuredAt.IsZero() {
			http.Error(w, "device_id, sensor_type and measured_at are required", http.StatusBadRequest)
			return
		}
		if len(input.DeviceID) > 64 || len(input.SensorType) > 32 {
			http.Error(w, "device_id or sensor_type too long", http.StatusBadRequest)
			return
		}

		keyID, _ := utils.GetAPIKeyIDFromContext(r.Context())

		result, err := Ingest(registry, IngestInput{
			DeviceID:       input.DeviceID,
			SensorType:     input.SensorType,
			MeasuredAt:     input.MeasuredAt,
			Value:          input.Value,
			APIKeyID:       keyID,
			IdempotencyKey: r.Header.Get("X-Idempotency-Key"),
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrDeviceNotFound):
				http.Error(w, "Device not found", http.StatusNotFound)
			case errors.Is(err, ErrIdempotencyConflict):
				http.Error(w, "Idempotency key already used with a different payload", http.StatusConflict)
			case errors.Is(err, ErrStoreUnavailable):
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Store unavailable, retry later", http.StatusServiceUnavailable)
			default:
				http.Error(w, "Failed to ingest reading", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if result.Created {
			w.WriteHeader(http.StatusCreated)
		}
		json.NewEncoder(w).Encode(toReadingOut(result.Reading, result.Category))
	}
}

// HistoryHandler returns readings for a device, newest first. Filters:
// sensor_type, min_severity, since/until (RFC3339), or minutes when neither
// bound is set.
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "device_id")

	query := db.DB.Where("device_id = ?", deviceID)

	if sensorType := r.URL.Query().Get("sensor_type"); sensorType != "" {
		query = query.Where("sensor_type = ?", sensorType)
	}

	if s := r.URL.Query().Get("min_severity"); s != "" {
		sev := ParseSeverity(s)
		if sev.String() != s {
			http.Error(w, "Invalid min_severity value", http.StatusBadRequest)
			return
		}
		switch sev {
		case SeverityWarn:
			query = query.Where("severity IN ?", []string{SeverityWarn.String(), SeverityDanger.String()})
		case SeverityDanger:
			query = query.Where("severity = ?", SeverityDanger.String())
		}
	}

	var since, until time.Time
	if s := r.URL.Query().Get("since"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			http.Error(w, "Invalid since timestamp", http.StatusBadRequest)
			return
		}
		since = t
		query = query.Where("measured_at >= ?", t)
	}
	if s := r.URL.Query().Get("until"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			http.Error(w, "Invalid until timestamp", http.StatusBadRequest)
			return
		}
		until = t
		query = query.Where("measured_at <= ?", t)
	}
	if s := r.URL.Query().Get("minutes"); s != "" && since.IsZero() && until.IsZero() {
		minutes, err := strconv.Atoi(s)
		if err != nil || minutes <= 0 {
			http.Error(w, "Invalid minutes value", http.StatusBadRequest)
			return
		}
		cutoff := time.Now().UTC().Add(-time.Duration(minutes) * time.Minute)
		query = query.Where("measured_at >= ?", cutoff)
	}

	limit := 500
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "Invalid limit value", http.StatusBadRequest)
			return
		}
		limit = min(max(n, 1), 5000)
	}

	var rows []Reading
	if err := query.Order("measured_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		http.Error(w, "Failed to fetch history: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]ReadingOut, 0, len(rows))
	for _, row := range rows {
		out = append(out, toReadingOut(row, aqi.CategoryForAQI(row.SensorType, row.AQI)))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// LatestHandler returns the most recent reading for each sensor_type of a
// device.
func LatestHandler(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "device_id")

	subq := db.DB.Model(&Reading{}).
		Select("sensor_type, MAX(measured_at) AS max_t").
		Where("device_id = ?", deviceID).
		Group("sensor_type")

	var rows []Reading
	err := db.DB.Model(&Reading{}).
		Joins("JOIN (?) latest ON telemetry.readings.sensor_type = latest.sensor_type AND telemetry.readings.measured_at = latest.max_t", subq).
		Where("device_id = ?", deviceID).
		Find(&rows).Error
	if err != nil {
		http.Error(w, "Failed to fetch latest readings: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(rows) == 0 {
		http.Error(w, "No readings found for this device", http.StatusNotFound)
		return
	}

	out := make([]ReadingOut, 0, len(rows))
	for _, row := range rows {
		out = append(out, toReadingOut(row, aqi.CategoryForAQI(row.SensorType, row.AQI)))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
