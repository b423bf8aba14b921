package converter

import "time"

// ProductRedisModel — сериализуемое представление товара в кэше.
type ProductRedisModel struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Price     string     `json:"price"`
	Image     string     `json:"image"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
