package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashToken возвращает hex-представление SHA-256 хэша refresh-токена.
// В базе хранится только хэш, сам токен никогда.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}

// CompareTokenHash сравнивает сохраненный хэш с предъявленным токеном
// в константное время.
func CompareTokenHash(storedHash, token string) bool {
	presented := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(presented)) == 1
}
