package utils

import (
	"errors"
	"time"

	"bizhub/config"

	"github.com/golang-jwt/jwt"
)

// RoleOwner is the only role allowed on the owner endpoints.
const RoleOwner = "business_owner"

var ErrInvalidToken = errors.New("invalid token")

// OwnerClaims identifies a business owner. Subject carries the owner ID.
type OwnerClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "bizhub-dev-secret"
	}
	return []byte(secret)
}

// GenerateOwnerToken signs an HS256 token for ownerID valid for duration.
func GenerateOwnerToken(ownerID, email string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := OwnerClaims{
		Email: email,
		Role:  RoleOwner,
		StandardClaims: jwt.StandardClaims{
			Subject:   ownerID,
			Issuer:    "bizhub",
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey())
}

// ParseOwnerToken verifies the signature, expiry and role of an owner token.
func ParseOwnerToken(tokenString string) (*OwnerClaims, error) {
	claims := &OwnerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" || claims.Role != RoleOwner {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
