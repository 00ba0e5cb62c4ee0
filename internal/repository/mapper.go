package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	cartResponse "github.com/almahera/storefront/cart/pkg/response"
	orderResponse "github.com/almahera/storefront/order/pkg/response"
	productResponse "github.com/almahera/storefront/product/pkg/response"
	userResponse "github.com/almahera/storefront/user/pkg/response"
)

func NumericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func DecimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func (c Cart) Response(items []CartItem) cartResponse.Cart {
	cartItems := make([]cartResponse.CartItem, len(items))
	for i, item := range items {
		cartItems[i] = item.Response()
	}
	return cartResponse.Cart{
		ID:         c.ID,
		UserID:     c.UserID,
		Items:      cartItems,
		TotalPrice: DecimalFromNumeric(c.TotalPrice),
		CreatedAt:  c.CreatedAt.Time,
		UpdatedAt:  c.UpdatedAt.Time,
	}
}

func (c CartItem) Response() cartResponse.CartItem {
	return cartResponse.CartItem{
		ID:        c.ID,
		ProductID: c.ProductID,
		Name:      c.Name,
		Image:     c.Image,
		UnitPrice: DecimalFromNumeric(c.UnitPrice),
		Size:      c.Size,
		Color:     c.Color,
		Quantity:  c.Quantity,
		CreatedAt: c.CreatedAt.Time,
		UpdatedAt: c.UpdatedAt.Time,
	}
}

func (o Order) Response(items []OrderItem) orderResponse.Order {
	orderItems := make([]orderResponse.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = item.Response()
	}
	return orderResponse.Order{
		ID:     o.ID,
		UserID: o.UserID,
		Items:  orderItems,
		ShippingAddress: orderResponse.ShippingAddress{
			Address:     o.Address,
			City:        o.City,
			PostalCode:  o.PostalCode,
			Country:     o.Country,
			PhoneNumber: o.PhoneNumber,
		},
		PaymentMethod: o.PaymentMethod,
		ItemsPrice:    DecimalFromNumeric(o.ItemsPrice),
		TaxPrice:      DecimalFromNumeric(o.TaxPrice),
		ShippingPrice: DecimalFromNumeric(o.ShippingPrice),
		TotalPrice:    DecimalFromNumeric(o.TotalPrice),
		IsPaid:        o.IsPaid,
		PaidAt:        timePtr(o.PaidAt),
		IsDelivered:   o.IsDelivered,
		DeliveredAt:   timePtr(o.DeliveredAt),
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt.Time,
		UpdatedAt:     o.UpdatedAt.Time,
	}
}

func (o OrderItem) Response() orderResponse.OrderItem {
	return orderResponse.OrderItem{
		ID:        o.ID,
		ProductID: o.ProductID,
		Name:      o.Name,
		Image:     o.Image,
		UnitPrice: DecimalFromNumeric(o.UnitPrice),
		Size:      o.Size,
		Color:     o.Color,
		Quantity:  o.Quantity,
	}
}

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Images:       p.Images,
		Category:     string(p.Category),
		Sizes:        p.Sizes,
		Colors:       p.Colors,
		Price:        DecimalFromNumeric(p.Price),
		CountInStock: p.CountInStock,
		IsFeatured:   p.IsFeatured,
		Rating:       DecimalFromNumeric(p.Rating),
		NumReviews:   p.NumReviews,
		CreatedAt:    p.CreatedAt.Time,
		UpdatedAt:    p.UpdatedAt.Time,
	}
}

func (r Review) Response() productResponse.Review {
	return productResponse.Review{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Name:      r.Name,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Time,
	}
}

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.Time,
		UpdatedAt: u.UpdatedAt.Time,
	}
}
