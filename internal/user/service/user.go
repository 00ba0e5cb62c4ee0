package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	commonErrors "github.com/almahera/storefront/internal/errors"
	"github.com/almahera/storefront/internal/log"
	"github.com/almahera/storefront/internal/otel"
	"github.com/almahera/storefront/internal/repository"
	"github.com/almahera/storefront/internal/token"
	"github.com/almahera/storefront/user/pkg/request"
	"github.com/almahera/storefront/user/pkg/response"
)

type UserRepository interface {
	InsertUser(c context.Context, arg repository.InsertUserParams) (repository.User, error)
	FindUserByEmail(c context.Context, email string) (repository.User, error)
	FindUserById(c context.Context, id uuid.UUID) (repository.User, error)
	FindUsers(c context.Context) ([]repository.User, error)
	UpdateUser(c context.Context, arg repository.UpdateUserParams) (repository.User, error)
	DeleteUser(c context.Context, id uuid.UUID) error
}

type UserService struct {
	queries   UserRepository
	secretKey string
}

func NewUserService(queries UserRepository, secretKey string) UserService {
	return UserService{queries: queries, secretKey: secretKey}
}

func (svc UserService) Register(
	c context.Context,
	param request.Register,
) (response.Login, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str("email", param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking existing email").Logger()
	_, err := svc.queries.FindUserByEmail(c, param.Email)
	if err == nil {
		err = fmt.Errorf("email=%s %w", param.Email, commonErrors.ErrEmailTaken)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding user by email=%s with error=%w", param.Email, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "inserting user").Logger()
	logger.Info().Msgf("inserting user email=%s", param.Email)
	user, err := svc.queries.InsertUser(c, repository.InsertUserParams{
		Name:     param.Name,
		Email:    param.Email,
		Password: string(hashed),
	})
	if err != nil {
		err = fmt.Errorf("failed inserting user with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msgf("inserted userId=%s", user.ID.String())

	return svc.login(user)
}

func (svc UserService) Login(
	c context.Context,
	param request.Login,
) (response.Login, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str("email", param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user by email").Logger()
	user, err := svc.queries.FindUserByEmail(c, param.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("email=%s %w", param.Email, commonErrors.ErrInvalidCredentials)
		} else {
			err = fmt.Errorf("failed finding user by email=%s with error=%w", param.Email, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "comparing password").Logger()
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password)); err != nil {
		err = fmt.Errorf("email=%s %w", param.Email, commonErrors.ErrInvalidCredentials)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Str(log.KeyUserID, user.ID.String()).Msgf("logged in userId=%s", user.ID.String())

	return svc.login(user)
}

func (svc UserService) FindProfile(
	c context.Context,
	identity token.Identity,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService FindProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindProfile").
		Str(log.KeyUserID, identity.UserID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	user, err := svc.findUser(c, identity.UserID)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	return user.Response(), nil
}

func (svc UserService) UpdateProfile(
	c context.Context,
	identity token.Identity,
	param request.UpdateProfile,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService UpdateProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateProfile").
		Str(log.KeyUserID, identity.UserID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	user, err := svc.findUser(c, identity.UserID)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}

	password := user.Password
	if param.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
		if err != nil {
			err = fmt.Errorf("failed hashing password with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.User{}, err
		}
		password = string(hashed)
	}

	logger = logger.With().Str(log.KeyProcess, "updating profile").Logger()
	logger.Info().Msgf("updating profile for userId=%s", identity.UserID.String())
	user, err = svc.queries.UpdateUser(c, repository.UpdateUserParams{
		ID:       user.ID,
		Name:     param.Name,
		Email:    param.Email,
		Password: password,
		IsAdmin:  user.IsAdmin,
	})
	if err != nil {
		err = fmt.Errorf("failed updating userId=%s with error=%w", identity.UserID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msgf("updated profile for userId=%s", identity.UserID.String())

	return user.Response(), nil
}

func (svc UserService) FindUsers(
	c context.Context,
	identity token.Identity,
) ([]response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService FindUsers")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUsers").
		Str(log.KeyUserID, identity.UserID.String()).
		Logger()

	if !identity.IsAdmin {
		err := fmt.Errorf("userId=%s is not an admin %w", identity.UserID.String(), commonErrors.ErrForbidden)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding users").Logger()
	logger.Info().Msg("finding users")
	users, err := svc.queries.FindUsers(c)
	if err != nil {
		err = fmt.Errorf("failed finding users with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d users", len(users))

	responses := make([]response.User, len(users))
	for i, user := range users {
		responses[i] = user.Response()
	}
	return responses, nil
}

func (svc UserService) FindUser(
	c context.Context,
	identity token.Identity,
	userID uuid.UUID,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService FindUser")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUser").
		Str(log.KeyUserID, userID.String()).
		Logger()

	if !identity.IsAdmin {
		err := fmt.Errorf("userId=%s is not an admin %w", identity.UserID.String(), commonErrors.ErrForbidden)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	user, err := svc.findUser(c, userID)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	return user.Response(), nil
}

func (svc UserService) UpdateUser(
	c context.Context,
	identity token.Identity,
	userID uuid.UUID,
	param request.UpdateUser,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService UpdateUser")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateUser").
		Str(log.KeyUserID, userID.String()).
		Logger()

	if !identity.IsAdmin {
		err := fmt.Errorf("userId=%s is not an admin %w", identity.UserID.String(), commonErrors.ErrForbidden)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	user, err := svc.findUser(c, userID)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating user").Logger()
	logger.Info().Msgf("updating userId=%s", userID.String())
	user, err = svc.queries.UpdateUser(c, repository.UpdateUserParams{
		ID:       user.ID,
		Name:     param.Name,
		Email:    param.Email,
		Password: user.Password,
		IsAdmin:  param.IsAdmin,
	})
	if err != nil {
		err = fmt.Errorf("failed updating userId=%s with error=%w", userID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msgf("updated userId=%s", userID.String())

	return user.Response(), nil
}

func (svc UserService) DeleteUser(
	c context.Context,
	identity token.Identity,
	userID uuid.UUID,
) error {
	c, span := otel.Tracer.Start(c, "UserService DeleteUser")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService DeleteUser").
		Str(log.KeyUserID, userID.String()).
		Logger()

	if !identity.IsAdmin {
		err := fmt.Errorf("userId=%s is not an admin %w", identity.UserID.String(), commonErrors.ErrForbidden)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(log.KeyProcess, "deleting user").Logger()
	logger.Info().Msgf("deleting userId=%s", userID.String())
	if _, err := svc.findUser(c, userID); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err := svc.queries.DeleteUser(c, userID); err != nil {
		err = fmt.Errorf("failed deleting userId=%s with error=%w", userID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("deleted userId=%s", userID.String())

	return nil
}

// FindUserById is the lookup other services use to resolve a user.
func (svc UserService) FindUserById(c context.Context, id uuid.UUID) (repository.User, error) {
	return svc.queries.FindUserById(c, id)
}

func (svc UserService) findUser(c context.Context, userID uuid.UUID) (repository.User, error) {
	user, err := svc.queries.FindUserById(c, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.User{}, fmt.Errorf("userId=%s %w", userID.String(), commonErrors.ErrNotFound)
		}
		return repository.User{}, fmt.Errorf("failed finding userId=%s with error=%w", userID.String(), err)
	}
	return user, nil
}

func (svc UserService) login(user repository.User) (response.Login, error) {
	signed, err := token.Sign(user.ID, user.IsAdmin, svc.secretKey)
	if err != nil {
		return response.Login{}, fmt.Errorf("failed signing token for userId=%s with error=%w", user.ID.String(), err)
	}
	return response.Login{User: user.Response(), Token: signed}, nil
}
