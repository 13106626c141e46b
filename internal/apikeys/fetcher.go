package apikeys

import (
	"github.com/aeris-iot/aeris-backend/internal/db"
	"github.com/aeris-iot/aeris-backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// KeyInfo is the DB-backed middleware.KeyFetcher implementation.
type KeyInfo struct{}

func (KeyInfo) FindKeyByID(id string) (utils.APIKeyData, error) {
	var key APIKey
	if err := db.DB.First(&key, "key_id = ?", id).Error; err != nil {
		return utils.APIKeyData{}, err
	}
	return utils.APIKeyData{
		KeyID:      key.KeyID,
		SecretHash: key.SecretHash,
		Revoked:    key.Revoked,
	}, nil
}

// Issue creates a new API key for owner and returns the record plus the full
// bearer token. The plaintext secret is not recoverable afterward.
func Issue(owner string) (APIKey, string, error) {
	keyID := uuid.NewString()
	secret := uuid.NewString()

	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return APIKey{}, "", err
	}

	key := APIKey{
		KeyID:      keyID,
		SecretHash: string(hashed),
		Owner:      owner,
	}
	if err := db.DB.Create(&key).Error; err != nil {
		return APIKey{}, "", err
	}

	return key, keyID + "." + secret, nil
}
