package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrOutOfStock              = errors.New("product is out of stock")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrForbidden               = errors.New("forbidden")
	ErrAlreadyReviewed         = errors.New("product already reviewed")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrUnknownCategory         = errors.New("unknown product category")

	ErrEmptyAuth          = errors.New("missing authorization")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
