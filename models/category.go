package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MsgCategoryNameRequired = "name is required"

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type CreateCategoryInput struct {
	Name Optional[string] `json:"name"`
}
