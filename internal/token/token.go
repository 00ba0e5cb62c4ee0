package token

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/almahera/storefront/internal/constants"
	inErrors "github.com/almahera/storefront/internal/errors"
	"github.com/almahera/storefront/internal/log"
	inOtel "github.com/almahera/storefront/internal/otel"
)

// Claims carries the registered JWT claims plus the admin flag so that
// controllers can build an explicit Identity without a user lookup per
// request.
type Claims struct {
	jwt.RegisteredClaims
	IsAdmin bool `json:"is_admin"`
}

// Identity is the authenticated caller, passed explicitly into every
// service operation.
type Identity struct {
	UserID  uuid.UUID
	IsAdmin bool
}

func Sign(userID uuid.UUID, isAdmin bool, secretKey string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{constants.AudienceUser},
			Issuer:    constants.AppName,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(30 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		IsAdmin: isAdmin,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
}

func Verify(c context.Context, tokenString string, secretKey string) (*jwt.Token, error) {
	c, span := inOtel.Tracer.Start(c, "token Verify")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "token Verify").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	logger.Trace().Msg("parsing claims")
	jwtToken, err := jwt.ParseWithClaims(tokenString,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
		jwt.WithAudience(constants.AudienceUser),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.AppName),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing claims with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msg("parsed claims")

	if !jwtToken.Valid {
		err = inErrors.ErrTokenInvalid
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	return jwtToken, nil
}

type jwtTokenKey struct{}

func AttachToContext(c context.Context, token *jwt.Token) context.Context {
	return context.WithValue(c, jwtTokenKey{}, token)
}

func FromContext(c context.Context) (*jwt.Token, bool) {
	token, ok := c.Value(jwtTokenKey{}).(*jwt.Token)
	return token, ok
}

// IdentityFromContext resolves the Identity of the verified token
// attached by the auth middleware.
func IdentityFromContext(c context.Context) (Identity, error) {
	token, ok := FromContext(c)
	if !ok {
		return Identity{}, inErrors.ErrEmptyAuth
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Identity{}, inErrors.ErrTokenInvalid
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("failed parsing token subject with error=%w", err)
	}
	return Identity{UserID: userID, IsAdmin: claims.IsAdmin}, nil
}
