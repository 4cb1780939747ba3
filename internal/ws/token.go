// internal/ws/token.go
//
// Per-connection session token: an HS256 JWT carrying the connection id.
// A client that reconnects with its token gets the same connection identity
// back, so the registry's participant mapping still applies and reconnection
// is idempotent. This is the only identity the server knows; there are no
// accounts.

package ws

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// connTokenTTL bounds how long a dropped client can resume its identity.
const connTokenTTL = 24 * time.Hour

func jwtSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev_secret_change_me")
}

// mintConnToken signs a session token for connection id.
func mintConnToken(id string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"cid": id,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(connTokenTTL).Unix(),
	})
	return t.SignedString(jwtSecret())
}

// verifyConnToken extracts the connection id from a session token.
// Returns "" for anything invalid or expired.
func verifyConnToken(tok string) string {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || !t.Valid {
		return ""
	}
	id, _ := claims["cid"].(string)
	return id
}
