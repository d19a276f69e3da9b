// Package errs содержит доменные ошибки, общие для сервисов и обработчиков.
//
// Сервисы возвращают эти ошибки (возможно обёрнутыми через fmt.Errorf с %w),
// а обработчики сопоставляют их с HTTP-статусами через errors.Is.
package errs

import "errors"

var (
	// ErrNotFound — сущность не существует либо скрыта правилами видимости.
	// Чужие строки намеренно неотличимы от несуществующих.
	ErrNotFound = errors.New("not found")

	// ErrForbidden — актор аутентифицирован, но операция запрещена политикой доступа.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserBlocked — учетная запись заблокирована администратором.
	ErrUserBlocked = errors.New("user is blocked")

	// ErrEmptyCart — оформление заказа при пустой корзине.
	ErrEmptyCart = errors.New("empty cart")

	// ErrSelfBlock — попытка администратора заблокировать самого себя.
	ErrSelfBlock = errors.New("cannot block yourself")

	// ErrInvalidOTP — ни один код не подходит для данного пользователя.
	ErrInvalidOTP = errors.New("invalid otp")

	// ErrExpiredOTP — код найден, но срок его действия истёк.
	ErrExpiredOTP = errors.New("otp expired")

	// ErrInvalidResetToken — токен сброса пароля не найден или уже использован.
	ErrInvalidResetToken = errors.New("invalid reset token")

	// ErrExpiredResetToken — токен сброса пароля просрочен.
	ErrExpiredResetToken = errors.New("reset token expired")

	// ErrInvalidSignature — подпись платёжного шлюза не прошла проверку.
	ErrInvalidSignature = errors.New("invalid payment signature")
)
