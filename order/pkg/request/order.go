package request

type ShippingAddress struct {
	Address     string `json:"address"     validate:"required"`
	City        string `json:"city"        validate:"required"`
	PostalCode  string `json:"postalCode"  validate:"required"`
	Country     string `json:"country"     validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type PlaceOrder struct {
	ShippingAddress ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   string          `json:"paymentMethod"   validate:"required"`
}

type PaymentResult struct {
	ID           string `json:"id"           validate:"required"`
	Status       string `json:"status"       validate:"required"`
	UpdateTime   string `json:"updateTime"`
	EmailAddress string `json:"emailAddress"`
}

type UpdateOrderStatus struct {
	Status string `json:"status" validate:"required"`
}
