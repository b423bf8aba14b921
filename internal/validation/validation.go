// Package validation содержит чистые функции проверки payload'а товара
// и нормализации цены. Используется и сервером, и клиентом каталога,
// чтобы оба пути редактирования нормализовали цену одинаково.
package validation

import (
	"strings"

	"github.com/vitrine-shop/go-backend/internal/domain"
	"github.com/vitrine-shop/go-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// CreateInput — payload запроса на создание товара.
type CreateInput struct {
	Name  string
	Price string
	Image string
}

// UpdateInput — частичный payload обновления. nil означает «поле не передано».
type UpdateInput struct {
	Name  *string
	Price *string
	Image *string
}

// ValidateCreate проверяет обязательные поля и возвращает товар с нормализованной ценой.
func ValidateCreate(in CreateInput) (*domain.Product, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Price) == "" {
		missing = append(missing, "price")
	}
	if strings.TrimSpace(in.Image) == "" {
		missing = append(missing, "image")
	}
	if len(missing) > 0 {
		return nil, e.Wrap(strings.Join(missing, ", "), e.ErrMissingFields)
	}

	price, err := NormalizePrice(in.Price)
	if err != nil {
		return nil, err
	}

	return domain.NewProduct(strings.TrimSpace(in.Name), price, strings.TrimSpace(in.Image)), nil
}

// ValidateUpdate проверяет только переданные поля. Переданное пустое значение —
// ошибка: товар не может потерять обязательное поле. Цена нормализуется
// тем же путём, что и при создании.
func ValidateUpdate(in UpdateInput) (UpdateInput, error) {
	out := UpdateInput{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return UpdateInput{}, e.Wrap("name", e.ErrMissingFields)
		}
		out.Name = &name
	}

	if in.Price != nil {
		price, err := NormalizePrice(*in.Price)
		if err != nil {
			return UpdateInput{}, err
		}
		out.Price = &price
	}

	if in.Image != nil {
		image := strings.TrimSpace(*in.Image)
		if image == "" {
			return UpdateInput{}, e.Wrap("image", e.ErrMissingFields)
		}
		out.Image = &image
	}

	return out, nil
}

// NormalizePrice приводит строку цены к каноническому виду с двумя знаками
// после точки ("19.999" -> "20.00", "3,50" -> "3.50").
// Допускается одна запятая или одна точка в роли десятичного разделителя.
func NormalizePrice(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", e.ErrInvalidPrice
	}

	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	// Смешение разделителей и повторные разделители запрещены
	if dots > 0 && commas > 0 {
		return "", e.ErrInvalidPrice
	}
	if dots > 1 || commas > 1 {
		return "", e.ErrInvalidPrice
	}

	normalized := strings.ReplaceAll(s, ",", ".")
	for _, r := range normalized {
		if (r < '0' || r > '9') && r != '.' {
			return "", e.ErrInvalidPrice
		}
	}
	if strings.HasPrefix(normalized, ".") || strings.HasSuffix(normalized, ".") {
		return "", e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return "", e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return "", e.ErrInvalidPrice
	}

	return d.Round(2).StringFixed(2), nil
}
