package auth

import (
	"time"

	"chat-workspace/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtKey is the secret used to sign tokens.
// In a production environment, this should be loaded from an environment
// variable or a secret manager.
var jwtKey = []byte("workspace_signing_key_change_me_2026")

// SessionClaims is the data carried inside a session token. SessionID is
// the handle used for revocation: logging out blacklists it, the token
// itself stays syntactically valid until it expires.
type SessionClaims struct {
	UserID     int `json:"user_id"`
	Permission int `json:"permission"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) SessionID() (uuid.UUID, error) {
	return uuid.Parse(c.ID)
}

// GenerateToken creates a signed session token for a user.
func GenerateToken(userID domain.UserID, permission int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:     int(userID),
		Permission: permission,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "chat-workspace",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ValidateToken parses a token string and verifies its signature and expiry.
// Revocation is a service concern, not checked here.
func ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
