package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Images       []string        `json:"images"`
	Category     string          `json:"category"`
	Sizes        []string        `json:"sizes"`
	Colors       []string        `json:"colors"`
	Price        decimal.Decimal `json:"price"`
	CountInStock int32           `json:"countInStock"`
	IsFeatured   bool            `json:"isFeatured"`
	Rating       decimal.Decimal `json:"rating"`
	NumReviews   int32           `json:"numReviews"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type ProductPage struct {
	Products      []Product `json:"products"`
	Page          int32     `json:"page"`
	Pages         int32     `json:"pages"`
	TotalProducts int64     `json:"totalProducts"`
}

type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
