package request

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	commonErrors "github.com/almahera/storefront/internal/errors"
)

type CreateProduct struct {
	Name         string          `json:"name"         validate:"required"`
	Description  string          `json:"description"  validate:"required"`
	Images       []string        `json:"images"`
	Category     string          `json:"category"     validate:"required"`
	Sizes        []string        `json:"sizes"`
	Colors       []string        `json:"colors"`
	Price        decimal.Decimal `json:"price"        validate:"required"`
	CountInStock int32           `json:"countInStock" validate:"gte=0"`
	IsFeatured   bool            `json:"isFeatured"`
}

type UpdateProduct struct {
	Name         string          `json:"name"         validate:"required"`
	Description  string          `json:"description"  validate:"required"`
	Images       []string        `json:"images"`
	Category     string          `json:"category"     validate:"required"`
	Sizes        []string        `json:"sizes"`
	Colors       []string        `json:"colors"`
	Price        decimal.Decimal `json:"price"        validate:"required"`
	CountInStock int32           `json:"countInStock" validate:"gte=0"`
	IsFeatured   bool            `json:"isFeatured"`
}

type CreateReview struct {
	Rating  int32  `json:"rating"  validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required"`
}

type FindProducts struct {
	Keyword   string    `json:"keyword"`
	Category  string    `json:"category"`
	Page      int32     `json:"page"`
	ProductID uuid.UUID `json:"-"`
}

// categoryAliases folds the spellings seen in imported catalogs into the
// canonical category names.
var categoryAliases = map[string]string{
	"mens":     "mens",
	"men":      "mens",
	"man":      "mens",
	"male":     "mens",
	"womens":   "womens",
	"women":    "womens",
	"woman":    "womens",
	"female":   "womens",
	"kids":     "kids",
	"kid":      "kids",
	"children": "kids",
	"child":    "kids",
	"trending": "trending",
	"trend":    "trending",
}

func ParseCategory(s string) (string, error) {
	canonical, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("category=%s %w", s, commonErrors.ErrUnknownCategory)
	}
	return canonical, nil
}
