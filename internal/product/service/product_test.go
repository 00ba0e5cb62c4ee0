package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonErrors "github.com/almahera/storefront/internal/errors"
	"github.com/almahera/storefront/internal/repository"
	"github.com/almahera/storefront/internal/token"
	"github.com/almahera/storefront/product/pkg/request"
)

type fakeProductRepository struct {
	products map[uuid.UUID]repository.Product
	reviews  map[uuid.UUID]repository.Review
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{
		products: map[uuid.UUID]repository.Product{},
		reviews:  map[uuid.UUID]repository.Review{},
	}
}

func (f *fakeProductRepository) InsertProduct(_ context.Context, arg repository.InsertProductParams) (repository.Product, error) {
	product := repository.Product{
		ID:           uuid.New(),
		Name:         arg.Name,
		Description:  arg.Description,
		Images:       arg.Images,
		Category:     arg.Category,
		Sizes:        arg.Sizes,
		Colors:       arg.Colors,
		Price:        arg.Price,
		CountInStock: arg.CountInStock,
		IsFeatured:   arg.IsFeatured,
	}
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductRepository) FindProductById(_ context.Context, id uuid.UUID) (repository.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return repository.Product{}, pgx.ErrNoRows
	}
	return product, nil
}

func (f *fakeProductRepository) FindProducts(_ context.Context, arg repository.FindProductsParams) ([]repository.Product, error) {
	matched := f.match(arg.Keyword, arg.Category)
	start := int(arg.PageOffset)
	if start > len(matched) {
		return nil, nil
	}
	end := start + int(arg.PageLimit)
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (f *fakeProductRepository) CountProducts(_ context.Context, arg repository.CountProductsParams) (int64, error) {
	return int64(len(f.match(arg.Keyword, arg.Category))), nil
}

func (f *fakeProductRepository) match(keyword string, category repository.NullProductCategory) []repository.Product {
	var matched []repository.Product
	for _, product := range f.products {
		if category.Valid && product.Category != category.ProductCategory {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(keyword)) {
			continue
		}
		matched = append(matched, product)
	}
	return matched
}

func (f *fakeProductRepository) FindTopProducts(_ context.Context, limit int32) ([]repository.Product, error) {
	var products []repository.Product
	for _, product := range f.products {
		if int32(len(products)) == limit {
			break
		}
		products = append(products, product)
	}
	return products, nil
}

func (f *fakeProductRepository) FindFeaturedProducts(_ context.Context, limit int32) ([]repository.Product, error) {
	var products []repository.Product
	for _, product := range f.products {
		if !product.IsFeatured {
			continue
		}
		if int32(len(products)) == limit {
			break
		}
		products = append(products, product)
	}
	return products, nil
}

func (f *fakeProductRepository) UpdateProduct(_ context.Context, arg repository.UpdateProductParams) (repository.Product, error) {
	product, ok := f.products[arg.ID]
	if !ok {
		return repository.Product{}, pgx.ErrNoRows
	}
	product.Name = arg.Name
	product.Description = arg.Description
	product.Images = arg.Images
	product.Category = arg.Category
	product.Sizes = arg.Sizes
	product.Colors = arg.Colors
	product.Price = arg.Price
	product.CountInStock = arg.CountInStock
	product.IsFeatured = arg.IsFeatured
	f.products[arg.ID] = product
	return product, nil
}

func (f *fakeProductRepository) DeleteProduct(_ context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepository) UpdateProductRating(_ context.Context, arg repository.UpdateProductRatingParams) (repository.Product, error) {
	product, ok := f.products[arg.ID]
	if !ok {
		return repository.Product{}, pgx.ErrNoRows
	}
	product.Rating = arg.Rating
	product.NumReviews = arg.NumReviews
	f.products[arg.ID] = product
	return product, nil
}

func (f *fakeProductRepository) InsertReview(_ context.Context, arg repository.InsertReviewParams) (repository.Review, error) {
	review := repository.Review{
		ID:        uuid.New(),
		ProductID: arg.ProductID,
		UserID:    arg.UserID,
		Name:      arg.Name,
		Rating:    arg.Rating,
		Comment:   arg.Comment,
	}
	f.reviews[review.ID] = review
	return review, nil
}

func (f *fakeProductRepository) FindReviewByProductIdAndUserId(_ context.Context, arg repository.FindReviewByProductIdAndUserIdParams) (repository.Review, error) {
	for _, review := range f.reviews {
		if review.ProductID == arg.ProductID && review.UserID == arg.UserID {
			return review, nil
		}
	}
	return repository.Review{}, pgx.ErrNoRows
}

func (f *fakeProductRepository) FindReviewsByProductId(_ context.Context, productID uuid.UUID) ([]repository.Review, error) {
	var reviews []repository.Review
	for _, review := range f.reviews {
		if review.ProductID == productID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

type fakeUserDirectory struct{}

func (fakeUserDirectory) FindUserById(_ context.Context, id uuid.UUID) (repository.User, error) {
	return repository.User{ID: id, Name: "Shopper"}, nil
}

func adminIdentity() token.Identity {
	return token.Identity{UserID: uuid.New(), IsAdmin: true}
}

func createProductRequest(category string) request.CreateProduct {
	return request.CreateProduct{
		Name:         "Linen Shirt",
		Description:  "Breathable summer shirt",
		Images:       []string{"https://cdn.example.com/shirt.jpg"},
		Category:     category,
		Sizes:        []string{"S", "M"},
		Colors:       []string{"white"},
		Price:        decimal.NewFromInt(80),
		CountInStock: 12,
	}
}

func TestInsertProductRequiresAdmin(t *testing.T) {
	svc := NewProductService(newFakeProductRepository(), fakeUserDirectory{})

	_, err := svc.InsertProduct(context.Background(), token.Identity{UserID: uuid.New()}, createProductRequest("mens"))
	assert.ErrorIs(t, err, commonErrors.ErrForbidden)
}

func TestInsertProductNormalizesCategory(t *testing.T) {
	svc := NewProductService(newFakeProductRepository(), fakeUserDirectory{})

	product, err := svc.InsertProduct(context.Background(), adminIdentity(), createProductRequest("Women"))
	require.NoError(t, err)
	assert.Equal(t, "womens", product.Category)
}

func TestInsertProductRejectsUnknownCategory(t *testing.T) {
	svc := NewProductService(newFakeProductRepository(), fakeUserDirectory{})

	_, err := svc.InsertProduct(context.Background(), adminIdentity(), createProductRequest("furniture"))
	assert.ErrorIs(t, err, commonErrors.ErrUnknownCategory)
}

func TestFindProductByIdUnknown(t *testing.T) {
	svc := NewProductService(newFakeProductRepository(), fakeUserDirectory{})

	_, err := svc.FindProductById(context.Background(), uuid.New())
	assert.ErrorIs(t, err, commonErrors.ErrNotFound)
}

func TestFindProductsPagination(t *testing.T) {
	repo := newFakeProductRepository()
	svc := NewProductService(repo, fakeUserDirectory{})
	admin := adminIdentity()

	for i := 0; i < 10; i++ {
		_, err := svc.InsertProduct(context.Background(), admin, createProductRequest("mens"))
		require.NoError(t, err)
	}

	page, err := svc.FindProducts(context.Background(), request.FindProducts{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Products, PageSize)
	assert.Equal(t, int32(1), page.Page)
	assert.Equal(t, int32(2), page.Pages)
	assert.Equal(t, int64(10), page.TotalProducts)

	page, err = svc.FindProducts(context.Background(), request.FindProducts{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
}

func TestFindProductsFiltersByCategory(t *testing.T) {
	repo := newFakeProductRepository()
	svc := NewProductService(repo, fakeUserDirectory{})
	admin := adminIdentity()

	_, err := svc.InsertProduct(context.Background(), admin, createProductRequest("mens"))
	require.NoError(t, err)
	_, err = svc.InsertProduct(context.Background(), admin, createProductRequest("kids"))
	require.NoError(t, err)

	page, err := svc.FindProducts(context.Background(), request.FindProducts{Category: "children"})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "kids", page.Products[0].Category)
}

func TestFindProductsRejectsUnknownCategory(t *testing.T) {
	svc := NewProductService(newFakeProductRepository(), fakeUserDirectory{})

	_, err := svc.FindProducts(context.Background(), request.FindProducts{Category: "gadgets"})
	assert.ErrorIs(t, err, commonErrors.ErrUnknownCategory)
}

func TestCreateReviewRecomputesRating(t *testing.T) {
	repo := newFakeProductRepository()
	svc := NewProductService(repo, fakeUserDirectory{})
	admin := adminIdentity()

	product, err := svc.InsertProduct(context.Background(), admin, createProductRequest("mens"))
	require.NoError(t, err)

	_, err = svc.CreateReview(
		context.Background(),
		token.Identity{UserID: uuid.New()},
		product.ID,
		request.CreateReview{Rating: 5, Comment: "great fit"},
	)
	require.NoError(t, err)
	_, err = svc.CreateReview(
		context.Background(),
		token.Identity{UserID: uuid.New()},
		product.ID,
		request.CreateReview{Rating: 2, Comment: "shrank in the wash"},
	)
	require.NoError(t, err)

	found, err := svc.FindProductById(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), found.NumReviews)
	assert.True(t, decimal.NewFromFloat(3.5).Equal(found.Rating))
}

func TestCreateReviewOncePerUser(t *testing.T) {
	repo := newFakeProductRepository()
	svc := NewProductService(repo, fakeUserDirectory{})

	product, err := svc.InsertProduct(context.Background(), adminIdentity(), createProductRequest("mens"))
	require.NoError(t, err)

	reviewer := token.Identity{UserID: uuid.New()}
	_, err = svc.CreateReview(context.Background(), reviewer, product.ID, request.CreateReview{Rating: 4, Comment: "good"})
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), reviewer, product.ID, request.CreateReview{Rating: 1, Comment: "changed my mind"})
	assert.ErrorIs(t, err, commonErrors.ErrAlreadyReviewed)
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	svc := NewProductService(newFakeProductRepository(), fakeUserDirectory{})

	_, err := svc.CreateReview(
		context.Background(),
		token.Identity{UserID: uuid.New()},
		uuid.New(),
		request.CreateReview{Rating: 4, Comment: "good"},
	)
	assert.ErrorIs(t, err, commonErrors.ErrNotFound)
}

func TestDeleteProductRequiresAdmin(t *testing.T) {
	repo := newFakeProductRepository()
	svc := NewProductService(repo, fakeUserDirectory{})

	product, err := svc.InsertProduct(context.Background(), adminIdentity(), createProductRequest("mens"))
	require.NoError(t, err)

	err = svc.DeleteProduct(context.Background(), token.Identity{UserID: uuid.New()}, product.ID)
	assert.ErrorIs(t, err, commonErrors.ErrForbidden)

	err = svc.DeleteProduct(context.Background(), adminIdentity(), product.ID)
	require.NoError(t, err)

	_, err = svc.FindProductById(context.Background(), product.ID)
	assert.ErrorIs(t, err, commonErrors.ErrNotFound)
}
