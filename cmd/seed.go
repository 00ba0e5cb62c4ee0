package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/almahera/storefront/internal/config"
	commonErrors "github.com/almahera/storefront/internal/errors"
	"github.com/almahera/storefront/internal/infra"
	"github.com/almahera/storefront/internal/log"
	"github.com/almahera/storefront/internal/otel"
	"github.com/almahera/storefront/internal/repository"
)

// RunSeed inserts an admin user and a small sample catalog so a fresh
// deployment has something to browse.
func RunSeed(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunSeed")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main RunSeed").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.Get(c, configName)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	defer db.Close()
	logger.Info().Msg("initialized database")

	queries := repository.New(db)

	logger = logger.With().Str(log.KeyProcess, "seeding admin user").Logger()
	logger.Info().Msg("seeding admin user")
	hashed, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing admin password with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	admin, err := queries.InsertUser(c, repository.InsertUserParams{
		Name:     "Admin",
		Email:    "admin@storefront.dev",
		Password: string(hashed),
		IsAdmin:  true,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting admin user with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Str(log.KeyUserID, admin.ID.String()).Msg("seeded admin user")

	logger = logger.With().Str(log.KeyProcess, "seeding products").Logger()
	logger.Info().Msg("seeding products")
	samples := []repository.InsertProductParams{
		{
			Name:         "Classic Oxford Shirt",
			Description:  "Button-down oxford shirt in breathable cotton.",
			Images:       []string{"/images/oxford-shirt.jpg"},
			Category:     repository.ProductCategoryMens,
			Sizes:        []string{"S", "M", "L", "XL"},
			Colors:       []string{"white", "blue"},
			Price:        repository.NumericFromDecimal(decimal.NewFromFloat(49.99)),
			CountInStock: 25,
			IsFeatured:   true,
		},
		{
			Name:         "Pleated Midi Skirt",
			Description:  "Flowy pleated skirt that falls just below the knee.",
			Images:       []string{"/images/midi-skirt.jpg"},
			Category:     repository.ProductCategoryWomens,
			Sizes:        []string{"XS", "S", "M", "L"},
			Colors:       []string{"black", "beige"},
			Price:        repository.NumericFromDecimal(decimal.NewFromFloat(64.50)),
			CountInStock: 18,
			IsFeatured:   true,
		},
		{
			Name:         "Dino Print Hoodie",
			Description:  "Soft fleece hoodie with an all-over dinosaur print.",
			Images:       []string{"/images/dino-hoodie.jpg"},
			Category:     repository.ProductCategoryKids,
			Sizes:        []string{"4T", "5T", "6"},
			Colors:       []string{"green"},
			Price:        repository.NumericFromDecimal(decimal.NewFromFloat(29.99)),
			CountInStock: 40,
			IsFeatured:   false,
		},
		{
			Name:         "Oversized Graphic Tee",
			Description:  "Relaxed fit tee with a seasonal graphic front.",
			Images:       []string{"/images/graphic-tee.jpg"},
			Category:     repository.ProductCategoryTrending,
			Sizes:        []string{"S", "M", "L", "XL"},
			Colors:       []string{"white", "black", "sand"},
			Price:        repository.NumericFromDecimal(decimal.NewFromFloat(24.99)),
			CountInStock: 60,
			IsFeatured:   true,
		},
	}
	for _, sample := range samples {
		product, err := queries.InsertProduct(c, sample)
		if err != nil {
			err = fmt.Errorf("failed inserting product name=%s with error=%w", sample.Name, err)
			commonErrors.HandleError(err, span)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Str(log.KeyProductID, product.ID.String()).Msgf("seeded product name=%s", product.Name)
	}
	logger.Info().Msgf("seeded %d products", len(samples))
}
