package models

// WishlistItem представляет сохранённый пользователем товар.
// Запись неизменяема: создаётся и удаляется, но не редактируется.
type WishlistItem struct {
	ID      int     `json:"id"`       // Идентификатор записи
	UserUID string  `json:"user_uid"` // Владелец списка желаний
	Product Product `json:"product"`  // Сохранённый товар
}

// DummyWishlistItem используется для приёма записи списка желаний из JSON-запроса.
type DummyWishlistItem struct {
	ProductID int `json:"product_id" validate:"required,gt=0"` // Идентификатор товара
}
