package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/config"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID         string `json:"user_id"`
	IsProfessional bool   `json:"is_professional"`
	jwt.RegisteredClaims
}

// GenerateToken выдает access-токен для пользователя
func GenerateToken(userID string, isProfessional bool) (string, error) {
	cfg := config.GetConfig()

	claims := &Claims{
		UserID:         userID,
		IsProfessional: isProfessional,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.JWT.TTL) * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseToken валидирует токен и возвращает claims
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.GetConfig()

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
