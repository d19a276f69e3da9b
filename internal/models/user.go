// Package models содержит доменные структуры магазина,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, admin или user
	Blocked      bool      // Признак блокировки учетной записи
	IsSuperuser  bool      // Признак суперпользователя
	CreatedAt    time.Time // Дата регистрации
}

// IsStaff — производный признак персонала: всегда вычисляется из роли
// и признака суперпользователя, отдельно не хранится.
func (u *User) IsStaff() bool {
	return u.Role == "admin" || u.IsSuperuser
}

// Actor описывает аутентифицированного инициатора запроса,
// восстановленного из JWT-claims.
type Actor struct {
	UID         string // Идентификатор пользователя
	Username    string // Имя пользователя
	Role        string // Роль: admin или user
	IsSuperuser bool   // Признак суперпользователя
}

// DummyUserUpdate используется для приёма данных запроса на изменение
// пользователя администратором (роль, блокировка).
type DummyUserUpdate struct {
	Role    *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"` // Новая роль
	Blocked *bool   `json:"blocked,omitempty"`                                    // Новый признак блокировки
}

// UserView — сериализованное представление пользователя для ответов API.
type UserView struct {
	UID         string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Blocked     bool   `json:"blocked"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
}

// NewUserView строит представление пользователя, вычисляя производное поле is_staff.
func NewUserView(u *User) UserView {
	return UserView{
		UID:         u.UID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		Blocked:     u.Blocked,
		IsSuperuser: u.IsSuperuser,
		IsStaff:     u.IsStaff(),
	}
}
