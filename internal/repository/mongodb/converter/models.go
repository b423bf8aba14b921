package converter

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductModel представляет документ коллекции products в MongoDB.
type ProductModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Price     string             `bson:"price"`
	Image     string             `bson:"image"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty"`
}
