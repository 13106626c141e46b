package utils

// APIKeyData is the credential shape middleware needs to validate a bearer
// token. It lives here so middleware does not depend on the apikeys package.
type APIKeyData struct {
	KeyID      string
	SecretHash string
	Revoked    bool
}
