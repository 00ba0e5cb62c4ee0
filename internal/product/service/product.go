package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	commonErrors "github.com/almahera/storefront/internal/errors"
	"github.com/almahera/storefront/internal/log"
	"github.com/almahera/storefront/internal/otel"
	"github.com/almahera/storefront/internal/repository"
	"github.com/almahera/storefront/internal/token"
	"github.com/almahera/storefront/product/pkg/request"
	"github.com/almahera/storefront/product/pkg/response"
)

const (
	// PageSize is the catalog listing page size.
	PageSize = 8
	// TopProductsLimit caps the carousel of highest rated products.
	TopProductsLimit = 5
	// FeaturedProductsLimit caps the featured shelf on the landing page.
	FeaturedProductsLimit = 8
)

type ProductRepository interface {
	InsertProduct(c context.Context, arg repository.InsertProductParams) (repository.Product, error)
	FindProductById(c context.Context, id uuid.UUID) (repository.Product, error)
	FindProducts(c context.Context, arg repository.FindProductsParams) ([]repository.Product, error)
	CountProducts(c context.Context, arg repository.CountProductsParams) (int64, error)
	FindTopProducts(c context.Context, limit int32) ([]repository.Product, error)
	FindFeaturedProducts(c context.Context, limit int32) ([]repository.Product, error)
	UpdateProduct(c context.Context, arg repository.UpdateProductParams) (repository.Product, error)
	DeleteProduct(c context.Context, id uuid.UUID) error
	UpdateProductRating(c context.Context, arg repository.UpdateProductRatingParams) (repository.Product, error)
	InsertReview(c context.Context, arg repository.InsertReviewParams) (repository.Review, error)
	FindReviewByProductIdAndUserId(c context.Context, arg repository.FindReviewByProductIdAndUserIdParams) (repository.Review, error)
	FindReviewsByProductId(c context.Context, productID uuid.UUID) ([]repository.Review, error)
}

// UserDirectory resolves the reviewer's display name at review time.
type UserDirectory interface {
	FindUserById(c context.Context, id uuid.UUID) (repository.User, error)
}

type ProductService struct {
	queries ProductRepository
	users   UserDirectory
}

func NewProductService(queries ProductRepository, users UserDirectory) ProductService {
	return ProductService{queries: queries, users: users}
}

func (svc ProductService) FindProducts(
	c context.Context,
	param request.FindProducts,
) (response.ProductPage, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str("keyword", param.Keyword).
		Str("category", param.Category).
		Int32("page", param.Page).
		Logger()

	page := param.Page
	if page < 1 {
		page = 1
	}
	category := repository.NullProductCategory{}
	if param.Category != "" {
		canonical, err := request.ParseCategory(param.Category)
		if err != nil {
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.ProductPage{}, err
		}
		category = repository.NullProductCategory{
			ProductCategory: repository.ProductCategory(canonical),
			Valid:           true,
		}
	}

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	logger.Info().Msg("finding products")
	products, err := svc.queries.FindProducts(c, repository.FindProductsParams{
		Keyword:    param.Keyword,
		Category:   category,
		PageLimit:  PageSize,
		PageOffset: (page - 1) * PageSize,
	})
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ProductPage{}, err
	}
	total, err := svc.queries.CountProducts(c, repository.CountProductsParams{
		Keyword:  param.Keyword,
		Category: category,
	})
	if err != nil {
		err = fmt.Errorf("failed counting products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ProductPage{}, err
	}
	logger.Info().Msgf("found %d of %d products", len(products), total)

	responses := make([]response.Product, len(products))
	for i, product := range products {
		responses[i] = product.Response()
	}
	pages := int32(total / PageSize)
	if total%PageSize != 0 {
		pages++
	}
	return response.ProductPage{
		Products:      responses,
		Page:          page,
		Pages:         pages,
		TotalProducts: total,
	}, nil
}

func (svc ProductService) FindProductById(
	c context.Context,
	productID uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, productID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msgf("finding productId=%s", productID.String())
	product, err := svc.queries.FindProductById(c, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("productId=%s %w", productID.String(), commonErrors.ErrNotFound)
		} else {
			err = fmt.Errorf("failed finding productId=%s with error=%w", productID.String(), err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msgf("found productId=%s", productID.String())

	return product.Response(), nil
}

func (svc ProductService) FindTopProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindTopProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindTopProducts").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding top products").Logger()
	logger.Info().Msg("finding top products")
	products, err := svc.queries.FindTopProducts(c, TopProductsLimit)
	if err != nil {
		err = fmt.Errorf("failed finding top products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d top products", len(products))

	responses := make([]response.Product, len(products))
	for i, product := range products {
		responses[i] = product.Response()
	}
	return responses, nil
}

func (svc ProductService) FindFeaturedProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindFeaturedProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindFeaturedProducts").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding featured products").Logger()
	logger.Info().Msg("finding featured products")
	products, err := svc.queries.FindFeaturedProducts(c, FeaturedProductsLimit)
	if err != nil {
		err = fmt.Errorf("failed finding featured products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d featured products", len(products))

	responses := make([]response.Product, len(products))
	for i, product := range products {
		responses[i] = product.Response()
	}
	return responses, nil
}

func (svc ProductService) InsertProduct(
	c context.Context,
	identity token.Identity,
	param request.CreateProduct,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Str(log.KeyUserID, identity.UserID.String()).
		Logger()

	if !identity.IsAdmin {
		err := fmt.Errorf("userId=%s is not an admin %w", identity.UserID.String(), commonErrors.ErrForbidden)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	category, err := request.ParseCategory(param.Category)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	logger.Info().Msgf("inserting product name=%s", param.Name)
	product, err := svc.queries.InsertProduct(c, repository.InsertProductParams{
		Name:         param.Name,
		Description:  param.Description,
		Images:       param.Images,
		Category:     repository.ProductCategory(category),
		Sizes:        param.Sizes,
		Colors:       param.Colors,
		Price:        repository.NumericFromDecimal(param.Price),
		CountInStock: param.CountInStock,
		IsFeatured:   param.IsFeatured,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().
		Str(log.KeyProductID, product.ID.String()).
		Msgf("inserted productId=%s", product.ID.String())

	return product.Response(), nil
}

func (svc ProductService) UpdateProduct(
	c context.Context,
	identity token.Identity,
	productID uuid.UUID,
	param request.UpdateProduct,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Str(log.KeyUserID, identity.UserID.String()).
		Str(log.KeyProductID, productID.String()).
		Logger()

	if !identity.IsAdmin {
		err := fmt.Errorf("userId=%s is not an admin %w", identity.UserID.String(), commonErrors.ErrForbidden)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	category, err := request.ParseCategory(param.Category)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	logger.Info().Msgf("updating productId=%s", productID.String())
	if _, err := svc.queries.FindProductById(c, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("productId=%s %w", productID.String(), commonErrors.ErrNotFound)
		} else {
			err = fmt.Errorf("failed finding productId=%s with error=%w", productID.String(), err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product, err := svc.queries.UpdateProduct(c, repository.UpdateProductParams{
		ID:           productID,
		Name:         param.Name,
		Description:  param.Description,
		Images:       param.Images,
		Category:     repository.ProductCategory(category),
		Sizes:        param.Sizes,
		Colors:       param.Colors,
		Price:        repository.NumericFromDecimal(param.Price),
		CountInStock: param.CountInStock,
		IsFeatured:   param.IsFeatured,
	})
	if err != nil {
		err = fmt.Errorf("failed updating productId=%s with error=%w", productID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msgf("updated productId=%s", productID.String())

	return product.Response(), nil
}

func (svc ProductService) DeleteProduct(
	c context.Context,
	identity token.Identity,
	productID uuid.UUID,
) error {
	c, span := otel.Tracer.Start(c, "ProductService DeleteProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService DeleteProduct").
		Str(log.KeyUserID, identity.UserID.String()).
		Str(log.KeyProductID, productID.String()).
		Logger()

	if !identity.IsAdmin {
		err := fmt.Errorf("userId=%s is not an admin %w", identity.UserID.String(), commonErrors.ErrForbidden)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(log.KeyProcess, "deleting product").Logger()
	logger.Info().Msgf("deleting productId=%s", productID.String())
	if _, err := svc.queries.FindProductById(c, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("productId=%s %w", productID.String(), commonErrors.ErrNotFound)
		} else {
			err = fmt.Errorf("failed finding productId=%s with error=%w", productID.String(), err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err := svc.queries.DeleteProduct(c, productID); err != nil {
		err = fmt.Errorf("failed deleting productId=%s with error=%w", productID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("deleted productId=%s", productID.String())

	return nil
}

func (svc ProductService) FindReviewsByProductId(
	c context.Context,
	productID uuid.UUID,
) ([]response.Review, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindReviewsByProductId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindReviewsByProductId").
		Str(log.KeyProductID, productID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding reviews").Logger()
	logger.Info().Msgf("finding reviews for productId=%s", productID.String())
	reviews, err := svc.queries.FindReviewsByProductId(c, productID)
	if err != nil {
		err = fmt.Errorf("failed finding reviews for productId=%s with error=%w", productID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d reviews for productId=%s", len(reviews), productID.String())

	responses := make([]response.Review, len(reviews))
	for i, review := range reviews {
		responses[i] = review.Response()
	}
	return responses, nil
}

// CreateReview adds a one-per-user review and recomputes the product's
// aggregate rating from all of its reviews.
func (svc ProductService) CreateReview(
	c context.Context,
	identity token.Identity,
	productID uuid.UUID,
	param request.CreateReview,
) (response.Review, error) {
	c, span := otel.Tracer.Start(c, "ProductService CreateReview")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService CreateReview").
		Str(log.KeyUserID, identity.UserID.String()).
		Str(log.KeyProductID, productID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	if _, err := svc.queries.FindProductById(c, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("productId=%s %w", productID.String(), commonErrors.ErrNotFound)
		} else {
			err = fmt.Errorf("failed finding productId=%s with error=%w", productID.String(), err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Review{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "checking existing review").Logger()
	_, err := svc.queries.FindReviewByProductIdAndUserId(c, repository.FindReviewByProductIdAndUserIdParams{
		ProductID: productID,
		UserID:    identity.UserID,
	})
	if err == nil {
		err = fmt.Errorf("productId=%s %w", productID.String(), commonErrors.ErrAlreadyReviewed)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Review{}, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed checking existing review for productId=%s with error=%w", productID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Review{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding reviewer").Logger()
	reviewer, err := svc.users.FindUserById(c, identity.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("userId=%s %w", identity.UserID.String(), commonErrors.ErrNotFound)
		} else {
			err = fmt.Errorf("failed finding userId=%s with error=%w", identity.UserID.String(), err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Review{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "inserting review").Logger()
	logger.Info().Msgf("inserting review for productId=%s", productID.String())
	review, err := svc.queries.InsertReview(c, repository.InsertReviewParams{
		ProductID: productID,
		UserID:    identity.UserID,
		Name:      reviewer.Name,
		Rating:    param.Rating,
		Comment:   param.Comment,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting review for productId=%s with error=%w", productID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Review{}, err
	}
	logger.Info().Msgf("inserted review for productId=%s", productID.String())

	logger = logger.With().Str(log.KeyProcess, "recomputing rating").Logger()
	reviews, err := svc.queries.FindReviewsByProductId(c, productID)
	if err != nil {
		err = fmt.Errorf("failed finding reviews for productId=%s with error=%w", productID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Review{}, err
	}
	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(decimal.NewFromInt32(r.Rating))
	}
	rating := sum.Div(decimal.NewFromInt(int64(len(reviews)))).Round(2)
	_, err = svc.queries.UpdateProductRating(c, repository.UpdateProductRatingParams{
		ID:         productID,
		Rating:     repository.NumericFromDecimal(rating),
		NumReviews: int32(len(reviews)),
	})
	if err != nil {
		err = fmt.Errorf("failed updating rating for productId=%s with error=%w", productID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Review{}, err
	}
	logger.Info().Msgf("recomputed rating=%s numReviews=%d for productId=%s", rating.String(), len(reviews), productID.String())

	return review.Response(), nil
}
