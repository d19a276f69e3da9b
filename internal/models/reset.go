package models

import "time"

// PasswordResetOTP представляет одноразовый шестизначный код сброса пароля.
// Код живёт 10 минут и потребляется удалением при успешной проверке.
// Выпуск нового кода не отзывает ранее выданные.
type PasswordResetOTP struct {
	ID        int       // Идентификатор записи
	UserUID   string    // Пользователь, которому выдан код
	Code      string    // Шестизначный код
	CreatedAt time.Time // Момент выдачи
}

// PasswordResetToken представляет одноразовый токен сброса пароля.
// Токен живёт 1 час; валиден, пока не использован и не истёк.
type PasswordResetToken struct {
	ID        int       // Идентификатор записи
	UserUID   string    // Пользователь, которому выдан токен
	Token     string    // Значение токена (uuid)
	Used      bool      // Токен уже использован
	CreatedAt time.Time // Момент выдачи
}

// DummyResetRequest используется для приёма запроса на выпуск кода или токена.
type DummyResetRequest struct {
	Email string `json:"email" validate:"required,email"` // Почта пользователя
}

// DummyOTPVerify используется для приёма проверки кода и нового пароля.
type DummyOTPVerify struct {
	Email       string `json:"email" validate:"required,email"`            // Почта пользователя
	OTP         string `json:"otp" validate:"required,len=6,numeric"`      // Шестизначный код
	NewPassword string `json:"new_password" validate:"required,min=6"`     // Новый пароль
}

// DummyTokenVerify используется для приёма проверки токена и нового пароля.
type DummyTokenVerify struct {
	Token       string `json:"token" validate:"required,uuid"`         // Токен сброса
	NewPassword string `json:"new_password" validate:"required,min=6"` // Новый пароль
}

// EmailMessage — событие для очереди уведомлений: письмо, которое
// воркер-отправитель должен доставить по SMTP.
type EmailMessage struct {
	To      string `json:"to"`      // Адрес получателя
	Subject string `json:"subject"` // Тема письма
	Body    string `json:"body"`    // Текст письма
}
