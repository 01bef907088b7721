package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PermissionTagAdmin allows creating, updating and deleting tag categories.
const PermissionTagAdmin = "tag_admin"

type Claims struct {
	Subject     string   `json:"sub"`
	Permissions []string `json:"permissions"`
	Exp         int64    `json:"exp"`
}

func (claims *Claims) FromJWTClaims(jwtClaims jwt.Claims) error {
	mapClaims, ok := jwtClaims.(jwt.MapClaims)
	if !ok {
		return fmt.Errorf("unexpected claims type %T", jwtClaims)
	}
	permissions := []string{}
	if raw, ok := mapClaims["permissions"].([]any); ok {
		for _, perm := range raw {
			if p, ok := perm.(string); ok {
				permissions = append(permissions, p)
			}
		}
	}
	claims.Permissions = permissions
	claims.Subject, _ = mapClaims["sub"].(string)
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return jwt.ErrTokenInvalidClaims
	}
	claims.Exp = int64(exp)
	return nil
}

func (claims *Claims) Valid() error {
	if time.Now().Unix() > claims.Exp {
		return jwt.ErrTokenExpired
	}
	return nil
}

func (claims *Claims) HasPermission(permission string) bool {
	for _, p := range claims.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func CreateToken(secret string, subject string, permissions []string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub":         subject,
			"permissions": permissions,
			"exp":         time.Now().Add(ttl).Unix(),
		})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(secret string, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	claims := &Claims{}
	if err := claims.FromJWTClaims(token.Claims); err != nil {
		return nil, err
	}
	if err := claims.Valid(); err != nil {
		return nil, err
	}
	return claims, nil
}
