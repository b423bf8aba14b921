package domain

import "time"

// Product описывает товар каталога.
type Product struct {
	ID        string // hex-идентификатор документа, назначается хранилищем
	Name      string
	Price     string // нормализованная цена с ровно двумя знаками после точки
	Image     string // URL изображения
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewProduct(name string, price string, image string) *Product {
	return &Product{
		Name:  name,
		Price: price,
		Image: image,
	}
}
