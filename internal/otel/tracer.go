package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/almahera/storefront/internal/constants"
)

var Tracer = otel.Tracer(constants.AppName)
