package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token (claim "typ").
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role permite que el middleware RBAC decida sin consultar la DB; ID (jti) identifica
// el token en la lista de revocados.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // "cliente" | "admin"
	Type   string `json:"typ"`
}

// Generate genera un token firmado HS256 con jti único.
func Generate(secret, issuer, userID, role, tokenType string, ttl time.Duration) (string, *Claims, error) {
	if secret == "" {
		return "", nil, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Role:   role,
		Type:   tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.ID == "" {
		return nil, errors.New("token sin jti")
	}
	return claims, nil
}

// Manager emite y valida el par access/refresh con una configuración fija.
type Manager struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Pair par de tokens emitidos juntos.
type Pair struct {
	Access  string
	Refresh string
}

// Issue emite access y refresh para el usuario.
func (m *Manager) Issue(userID, role string) (*Pair, error) {
	access, _, err := Generate(m.Secret, m.Issuer, userID, role, TypeAccess, m.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, _, err := Generate(m.Secret, m.Issuer, userID, role, TypeRefresh, m.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{Access: access, Refresh: refresh}, nil
}

// Parse valida un token con el secreto del manager.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	return Parse(m.Secret, tokenString)
}
