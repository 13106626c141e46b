package apikeys

import "time"

// APIKey is a bearer credential. The secret is bcrypt-hashed at rest; the
// full token (keyID.secret) is shown exactly once at issue time.
type APIKey struct {
	KeyID      string    `gorm:"primaryKey;size:64" json:"key_id"`
	SecretHash string    `gorm:"not null" json:"-"`
	Owner      string    `gorm:"size:128" json:"owner"`
	Revoked    bool      `gorm:"default:false" json:"revoked"`
	CreatedAt  time.Time `json:"created_at"`
}

func (APIKey) TableName() string { return "app_auth.api_keys" }
