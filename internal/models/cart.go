package models

// CartItem представляет позицию корзины: товар и количество,
// принадлежащие ровно одному пользователю. На пару (пользователь, товар)
// существует не более одной строки.
type CartItem struct {
	ID       int     `json:"id"`       // Идентификатор позиции
	UserUID  string  `json:"user_uid"` // Владелец корзины
	Product  Product `json:"product"`  // Товар (денормализованное представление для ответов)
	Quantity int     `json:"quantity"` // Количество, >= 1
}

// DummyCartItem используется для приёма позиции корзины из JSON-запроса.
type DummyCartItem struct {
	ProductID int `json:"product_id" validate:"required,gt=0"` // Идентификатор товара
	Quantity  int `json:"quantity" validate:"required,gte=1"`  // Количество (>=1)
}

// DummyCartUpdate используется для изменения количества существующей позиции.
type DummyCartUpdate struct {
	Quantity int `json:"quantity" validate:"required,gte=1"` // Новое количество (>=1)
}
