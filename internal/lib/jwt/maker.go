package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken создает access-токен с заданными данными пользователя,
// подписывая его секретным ключом.
//
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(uid, username, role string, isSuperuser bool) (string, error) {
	return j.generate(uid, username, role, isSuperuser, TokenTypeAccess, j.tokenTTL)
}

// GenerateRefreshToken создает refresh-токен с увеличенным сроком жизни.
func (j *MakerImpl) GenerateRefreshToken(uid, username, role string, isSuperuser bool) (string, error) {
	return j.generate(uid, username, role, isSuperuser, TokenTypeRefresh, j.refreshTTL)
}

func (j *MakerImpl) generate(uid, username, role string, isSuperuser bool, tokenType string, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		UserUID:     uid,
		Username:    username,
		Role:        role,
		IsSuperuser: isSuperuser,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и валидность,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
