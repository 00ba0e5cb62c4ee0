package request

import "github.com/google/uuid"

type AddCartItem struct {
	ProductID uuid.UUID `json:"productId"  validate:"required"`
	Size      string    `json:"size"       validate:"required"`
	Color     string    `json:"color"      validate:"required"`
	Quantity  int32     `json:"quantity"   validate:"required,gte=1"`
}

type UpdateCartItemQuantity struct {
	Quantity int32 `json:"quantity" validate:"required,gte=1"`
}

type LocalCartItem struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Size      string    `json:"size"      validate:"required"`
	Color     string    `json:"color"     validate:"required"`
	Quantity  int32     `json:"quantity"  validate:"required,gte=1"`
}

type MergeLocal struct {
	Items []LocalCartItem `json:"items" validate:"required,dive"`
}
