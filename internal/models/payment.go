package models

import "time"

// PaymentOrder связывает заказ магазина с заказом платёжного шлюза.
// Сумма фиксируется на момент создания платежа.
type PaymentOrder struct {
	ID             int       `json:"id"`               // Идентификатор записи
	OrderID        int       `json:"order_id"`         // Заказ магазина
	GatewayOrderID string    `json:"gateway_order_id"` // Идентификатор заказа на стороне шлюза
	Amount         float64   `json:"amount"`           // Сумма платежа
	Currency       string    `json:"currency"`         // Валюта платежа
	CreatedAt      time.Time `json:"created_at"`       // Момент создания
}

// DummyPaymentCreate используется для приёма запроса на создание платежа.
type DummyPaymentCreate struct {
	OrderID int `json:"order_id" validate:"required,gt=0"` // Заказ магазина
}

// DummyPaymentVerify используется для приёма подтверждения платежа от клиента.
type DummyPaymentVerify struct {
	GatewayOrderID string `json:"gateway_order_id" validate:"required"` // Заказ на стороне шлюза
	PaymentID      string `json:"payment_id" validate:"required"`       // Платёж на стороне шлюза
	Signature      string `json:"signature" validate:"required"`        // Подпись HMAC-SHA256
}
