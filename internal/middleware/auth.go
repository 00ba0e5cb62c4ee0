package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	inErrors "github.com/almahera/storefront/internal/errors"
	inHttp "github.com/almahera/storefront/internal/http"
	"github.com/almahera/storefront/internal/log"
	"github.com/almahera/storefront/internal/token"
)

// Auth verifies the bearer token and attaches it to the request
// context; controllers resolve the explicit Identity from there.
func Auth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware Auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" || !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			jwtToken, err := token.Verify(c, authorization[len("bearer "):], secretKey)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			c = token.AttachToContext(c, jwtToken)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
