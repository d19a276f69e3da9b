package models

import "time"

// Статусы заказа. Поле статуса — свободная строка, жёсткий граф переходов
// намеренно не навязывается; перечислены значения, используемые системой.
const (
	OrderStatusPending   = "Pending"
	OrderStatusPaid      = "Paid"
	OrderStatusShipped   = "Shipped"
	OrderStatusCancelled = "Cancelled"
)

// Order представляет заголовок заказа — неизменяемый снимок корзины
// на момент оформления. После создания меняется только статус.
type Order struct {
	ID               int         `json:"id"`                 // Идентификатор заказа
	UserUID          string      `json:"user_uid"`           // Покупатель
	Total            float64     `json:"total"`              // Итоговая сумма, зафиксированная при оформлении
	Address          string      `json:"address"`            // Адрес доставки
	Status           string      `json:"status"`             // Текущий статус
	CancelledByAdmin bool        `json:"cancelled_by_admin"` // Отмена выполнена администратором
	CreatedAt        time.Time   `json:"created_at"`         // Дата оформления
	Items            []OrderItem `json:"items,omitempty"`    // Позиции заказа
}

// OrderItem представляет позицию заказа — копию строки корзины
// на момент оформления. Никогда не изменяется после создания.
type OrderItem struct {
	ID       int     `json:"id"`       // Идентификатор позиции
	OrderID  int     `json:"order_id"` // Заказ
	Product  Product `json:"product"`  // Товар
	Quantity int     `json:"quantity"` // Количество
}

// DummyCheckout используется для приёма запроса на оформление заказа.
// Состав заказа берётся из текущей корзины пользователя, а не из запроса.
type DummyCheckout struct {
	Address string `json:"address" validate:"required,max=255"` // Адрес доставки
}

// DummyOrderStatus используется для приёма нового статуса заказа администратором.
type DummyOrderStatus struct {
	Status string `json:"status" validate:"required,max=50"` // Новый статус
}
