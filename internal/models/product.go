package models

// Product представляет товар каталога.
type Product struct {
	ID          int     `json:"id"`                    // Идентификатор товара
	Name        string  `json:"name"`                  // Название
	Brand       string  `json:"brand"`                 // Бренд
	Gender      string  `json:"gender"`                // Целевая аудитория (male/female/unisex)
	Category    string  `json:"category"`              // Категория
	Price       float64 `json:"price"`                 // Цена за единицу
	Image       string  `json:"image,omitempty"`       // Ссылка на изображение (опционально)
	Description string  `json:"description,omitempty"` // Описание (опционально)
}

// DummyProduct используется для приёма данных товара из JSON-запроса.
type DummyProduct struct {
	Name        string  `json:"name" validate:"required,max=200"`     // Название
	Brand       string  `json:"brand" validate:"required,max=100"`    // Бренд
	Gender      string  `json:"gender" validate:"required,max=20"`    // Целевая аудитория
	Category    string  `json:"category" validate:"required,max=50"`  // Категория
	Price       float64 `json:"price" validate:"required,gt=0"`       // Цена (>0)
	Image       string  `json:"image,omitempty"`                      // Ссылка на изображение
	Description string  `json:"description,omitempty"`                // Описание
}

// ProductSales — строка рейтинга продаж: товар и суммарное проданное количество.
type ProductSales struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
