package models

import "time"

// ContactMessage представляет входящее обращение в поддержку.
// Создаётся только извне; администратор может лишь отмечать
// обращение прочитанным/отвеченным или удалять его.
type ContactMessage struct {
	ID        int       `json:"id"`         // Идентификатор обращения
	Name      string    `json:"name"`       // Имя отправителя
	Email     string    `json:"email"`      // Почта отправителя
	Message   string    `json:"message"`    // Текст обращения
	IsRead    bool      `json:"is_read"`    // Прочитано администратором
	Replied   bool      `json:"replied"`    // Дан ответ
	CreatedAt time.Time `json:"created_at"` // Дата поступления
}

// DummyContactMessage используется для приёма обращения из JSON-запроса.
type DummyContactMessage struct {
	Name    string `json:"name" validate:"required,max=100"` // Имя отправителя
	Email   string `json:"email" validate:"required,email"`  // Почта отправителя
	Message string `json:"message" validate:"required"`      // Текст обращения
}

// DummyContactFlags используется для изменения флагов обращения администратором.
type DummyContactFlags struct {
	IsRead  *bool `json:"is_read,omitempty"` // Отметка о прочтении
	Replied *bool `json:"replied,omitempty"` // Отметка об ответе
}
