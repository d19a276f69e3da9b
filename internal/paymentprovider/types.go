// Package paymentprovider реализует клиента платёжного шлюза (Razorpay).
//
// Система не реализует платёжную логику сама: она лишь создает заказ
// на стороне шлюза, передаёт клиенту его идентификатор и проверяет
// подпись результата оплаты.
package paymentprovider

// CreateOrderRequest представляет запрос на создание заказа в шлюзе.
// Сумма передаётся в минимальных единицах валюты (пайсах/копейках).
type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`   // сумма в минимальных единицах, например 2500 = 25.00
	Currency string `json:"currency"` // валюта, например "INR"
	Receipt  string `json:"receipt"`  // внутренний идентификатор квитанции
}

// CreateOrderResponse представляет ответ шлюза на создание заказа.
type CreateOrderResponse struct {
	ID       string `json:"id"`       // идентификатор заказа в шлюзе
	Amount   int64  `json:"amount"`   // сумма
	Currency string `json:"currency"` // валюта
	Receipt  string `json:"receipt"`  // квитанция
	Status   string `json:"status"`   // статус заказа в шлюзе, например "created"
}
