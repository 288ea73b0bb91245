package entity

import "time"

// RevokedToken es una credencial invalidada (logout/refresh) identificada por su jti.
type RevokedToken struct {
	JTI       string
	ExpiresAt time.Time
	CreatedAt time.Time
}
