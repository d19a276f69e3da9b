// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// CustomClaims расширяет стандартные claims JWT, добавляя идентификатор,
// имя, роль и признак суперпользователя.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Типы токенов, записываемые в claim token_type.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserUID              string `json:"uid"`          // Идентификатор пользователя
	Username             string `json:"username"`     // Имя пользователя
	Role                 string `json:"role"`         // Роль пользователя
	IsSuperuser          bool   `json:"is_superuser"` // Признак суперпользователя
	TokenType            string `json:"token_type"`   // Тип токена: access или refresh
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Maker определяет интерфейс для выпуска и проверки JWT токенов.
type Maker interface {
	GenerateToken(uid, username, role string, isSuperuser bool) (string, error)
	GenerateRefreshToken(uid, username, role string, isSuperuser bool) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl — реализация Maker на секретном ключе HMAC.
type MakerImpl struct {
	secretKey  string
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

// NewJWTMaker создает новый MakerImpl с заданным ключом и сроками жизни токенов.
func NewJWTMaker(secretKey string, tokenTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		tokenTTL:   tokenTTL,
		refreshTTL: refreshTTL,
	}
}
