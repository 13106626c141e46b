package readings

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
)

const (
	statusInProgress = "in-progress"
	statusSucceeded  = "succeeded"
)

// BeginOutcome is the result of claiming an idempotency key.
type BeginOutcome int

const (
	// BeginFresh: key unseen, record created in-progress; caller proceeds.
	BeginFresh BeginOutcome = iota
	// BeginReplay: key completed with the same payload; caller returns the
	// prior reading untouched.
	BeginReplay
	// BeginRetry: key seen with the same payload but a prior attempt never
	// finalized; caller may retry the write.
	BeginRetry
	// BeginMismatch: key reused with a different payload fingerprint.
	BeginMismatch
)

// Fingerprint digests the normalized request payload. Timestamps are taken in
// UTC so the same instant sent with different zone offsets hashes the same.
func Fingerprint(deviceID, sensorType string, measuredAt time.Time, value float64) string {
	payload := deviceID + "|" + sensorType + "|" +
		measuredAt.UTC().Format(time.RFC3339Nano) + "|" +
		strconv.FormatFloat(value, 'g', -1, 64)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Begin claims key for a request with the given payload hash. The create
// relies on the primary key, so two concurrent requests with the same fresh
// key are serialized by the store: exactly one sees BeginFresh, the loser
// re-reads the record and lands on the replay/retry/mismatch path.
func Begin(tx *gorm.DB, key, hash string) (BeginOutcome, *uint64, error) {
	rec := IdempotencyRecord{Key: key, RequestHash: hash, Status: statusInProgress}
	err := tx.Create(&rec).Error
	if err == nil {
		return BeginFresh, nil, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, nil, err
	}

	var existing IdempotencyRecord
	if err := tx.First(&existing, "key = ?", key).Error; err != nil {
		return 0, nil, err
	}

	if existing.RequestHash != hash {
		return BeginMismatch, nil, nil
	}
	if existing.Status == statusSucceeded && existing.ReadingID != nil {
		return BeginReplay, existing.ReadingID, nil
	}
	// In-progress with a matching hash: the earlier attempt crashed before
	// finalize, or is racing us. Retrying is safe; the natural-key constraint
	// still guarantees a single stored row.
	return BeginRetry, nil, nil
}

// Finalize marks key succeeded and records the reading it resolved to.
func Finalize(tx *gorm.DB, key string, readingID uint64) error {
	return tx.Model(&IdempotencyRecord{}).
		Where("key = ?", key).
		Updates(map[string]any{
			"status":     statusSucceeded,
			"reading_id": readingID,
		}).Error
}
