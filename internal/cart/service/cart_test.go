package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almahera/storefront/internal/cart/cache"
	"github.com/almahera/storefront/cart/pkg/request"
	"github.com/almahera/storefront/cart/pkg/response"
	commonErrors "github.com/almahera/storefront/internal/errors"
	"github.com/almahera/storefront/internal/repository"
)

type fakeCartRepository struct {
	carts map[uuid.UUID]repository.Cart
	items map[uuid.UUID]repository.CartItem
}

func newFakeCartRepository() *fakeCartRepository {
	return &fakeCartRepository{
		carts: map[uuid.UUID]repository.Cart{},
		items: map[uuid.UUID]repository.CartItem{},
	}
}

func (f *fakeCartRepository) UpsertCart(_ context.Context, userID uuid.UUID) (repository.Cart, error) {
	if cart, ok := f.carts[userID]; ok {
		return cart, nil
	}
	cart := repository.Cart{ID: uuid.New(), UserID: userID}
	f.carts[userID] = cart
	return cart, nil
}

func (f *fakeCartRepository) FindCartByUserId(_ context.Context, userID uuid.UUID) (repository.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return repository.Cart{}, pgx.ErrNoRows
	}
	return cart, nil
}

func (f *fakeCartRepository) FindCartItemsByCartId(_ context.Context, cartID uuid.UUID) ([]repository.CartItem, error) {
	var items []repository.CartItem
	for _, item := range f.items {
		if item.CartID == cartID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeCartRepository) FindCartItemById(_ context.Context, id uuid.UUID) (repository.CartItem, error) {
	item, ok := f.items[id]
	if !ok {
		return repository.CartItem{}, pgx.ErrNoRows
	}
	return item, nil
}

func (f *fakeCartRepository) InsertCartItem(_ context.Context, arg repository.InsertCartItemParams) (repository.CartItem, error) {
	item := repository.CartItem{
		ID:        uuid.New(),
		CartID:    arg.CartID,
		ProductID: arg.ProductID,
		Name:      arg.Name,
		Image:     arg.Image,
		UnitPrice: arg.UnitPrice,
		Size:      arg.Size,
		Color:     arg.Color,
		Quantity:  arg.Quantity,
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeCartRepository) UpdateCartItemQuantity(_ context.Context, arg repository.UpdateCartItemQuantityParams) (repository.CartItem, error) {
	item, ok := f.items[arg.ID]
	if !ok {
		return repository.CartItem{}, pgx.ErrNoRows
	}
	item.Quantity = arg.Quantity
	f.items[arg.ID] = item
	return item, nil
}

func (f *fakeCartRepository) DeleteCartItem(_ context.Context, arg repository.DeleteCartItemParams) error {
	item, ok := f.items[arg.ID]
	if ok && item.CartID == arg.CartID {
		delete(f.items, arg.ID)
	}
	return nil
}

func (f *fakeCartRepository) DeleteCartItems(_ context.Context, cartID uuid.UUID) error {
	for id, item := range f.items {
		if item.CartID == cartID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeCartRepository) UpdateCartTotal(_ context.Context, arg repository.UpdateCartTotalParams) (repository.Cart, error) {
	for userID, cart := range f.carts {
		if cart.ID == arg.ID {
			cart.TotalPrice = arg.TotalPrice
			f.carts[userID] = cart
			return cart, nil
		}
	}
	return repository.Cart{}, pgx.ErrNoRows
}

type fakeCatalog struct {
	products map[uuid.UUID]repository.Product
}

func (f *fakeCatalog) FindProductById(_ context.Context, id uuid.UUID) (repository.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return repository.Product{}, pgx.ErrNoRows
	}
	return product, nil
}

type fakeCartCache struct {
	carts   map[uuid.UUID]response.Cart
	deletes int
}

func newFakeCartCache() *fakeCartCache {
	return &fakeCartCache{carts: map[uuid.UUID]response.Cart{}}
}

func (f *fakeCartCache) Get(_ context.Context, userID uuid.UUID) (response.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return response.Cart{}, cache.ErrCacheMiss
	}
	return cart, nil
}

func (f *fakeCartCache) Set(_ context.Context, userID uuid.UUID, cart response.Cart) error {
	f.carts[userID] = cart
	return nil
}

func (f *fakeCartCache) Delete(_ context.Context, userID uuid.UUID) error {
	f.deletes++
	delete(f.carts, userID)
	return nil
}

func newTestProduct(price int64, stock int32) repository.Product {
	return repository.Product{
		ID:           uuid.New(),
		Name:         "Oversized Hoodie",
		Images:       []string{"https://cdn.example.com/hoodie.jpg"},
		Category:     repository.ProductCategoryMens,
		Sizes:        []string{"S", "M", "L"},
		Colors:       []string{"black", "grey"},
		Price:        repository.NumericFromDecimal(decimal.NewFromInt(price)),
		CountInStock: stock,
	}
}

func newCartServiceFixture(products ...repository.Product) (CartService, *fakeCartRepository) {
	repo := newFakeCartRepository()
	catalog := &fakeCatalog{products: map[uuid.UUID]repository.Product{}}
	for _, p := range products {
		catalog.products[p.ID] = p
	}
	return NewCartService(repo, catalog, newFakeCartCache()), repo
}

func findLine(t *testing.T, cart response.Cart, productID uuid.UUID, size, color string) response.CartItem {
	t.Helper()
	for _, item := range cart.Items {
		if item.ProductID == productID && item.Size == size && item.Color == color {
			return item
		}
	}
	t.Fatalf("no cart line for productId=%s size=%s color=%s", productID, size, color)
	return response.CartItem{}
}

func TestFindCartByUserIdMaterializesEmptyCart(t *testing.T) {
	svc, _ := newCartServiceFixture()
	userID := uuid.New()

	cart, err := svc.FindCartByUserId(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalPrice.IsZero())
}

func TestAddCartItemSnapshotsProduct(t *testing.T) {
	product := newTestProduct(250, 10)
	svc, _ := newCartServiceFixture(product)
	userID := uuid.New()

	cart, err := svc.AddCartItem(context.Background(), userID, request.AddCartItem{
		ProductID: product.ID,
		Size:      "M",
		Color:     "black",
		Quantity:  2,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	line := findLine(t, cart, product.ID, "M", "black")
	assert.Equal(t, "Oversized Hoodie", line.Name)
	assert.Equal(t, "https://cdn.example.com/hoodie.jpg", line.Image)
	assert.Equal(t, int32(2), line.Quantity)
	assert.True(t, decimal.NewFromInt(250).Equal(line.UnitPrice))
	assert.True(t, decimal.NewFromInt(500).Equal(cart.TotalPrice))
}

func TestAddCartItemConsolidatesSameLine(t *testing.T) {
	product := newTestProduct(100, 10)
	svc, _ := newCartServiceFixture(product)
	userID := uuid.New()

	param := request.AddCartItem{ProductID: product.ID, Size: "M", Color: "black", Quantity: 2}
	_, err := svc.AddCartItem(context.Background(), userID, param)
	require.NoError(t, err)

	param.Quantity = 3
	cart, err := svc.AddCartItem(context.Background(), userID, param)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, int32(5), findLine(t, cart, product.ID, "M", "black").Quantity)
	assert.True(t, decimal.NewFromInt(500).Equal(cart.TotalPrice))
}

func TestAddCartItemDifferentSizeIsSeparateLine(t *testing.T) {
	product := newTestProduct(100, 10)
	svc, _ := newCartServiceFixture(product)
	userID := uuid.New()

	_, err := svc.AddCartItem(context.Background(), userID, request.AddCartItem{
		ProductID: product.ID, Size: "M", Color: "black", Quantity: 1,
	})
	require.NoError(t, err)
	cart, err := svc.AddCartItem(context.Background(), userID, request.AddCartItem{
		ProductID: product.ID, Size: "L", Color: "black", Quantity: 1,
	})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	svc, _ := newCartServiceFixture()

	_, err := svc.AddCartItem(context.Background(), uuid.New(), request.AddCartItem{
		ProductID: uuid.New(), Size: "M", Color: "black", Quantity: 1,
	})
	assert.ErrorIs(t, err, commonErrors.ErrNotFound)
}

func TestAddCartItemExceedsStock(t *testing.T) {
	product := newTestProduct(100, 3)
	svc, _ := newCartServiceFixture(product)

	_, err := svc.AddCartItem(context.Background(), uuid.New(), request.AddCartItem{
		ProductID: product.ID, Size: "M", Color: "black", Quantity: 4,
	})
	assert.ErrorIs(t, err, commonErrors.ErrOutOfStock)
}

func TestAddCartItemCombinedQuantityExceedsStock(t *testing.T) {
	product := newTestProduct(100, 3)
	svc, _ := newCartServiceFixture(product)
	userID := uuid.New()

	param := request.AddCartItem{ProductID: product.ID, Size: "M", Color: "black", Quantity: 2}
	_, err := svc.AddCartItem(context.Background(), userID, param)
	require.NoError(t, err)

	_, err = svc.AddCartItem(context.Background(), userID, param)
	assert.ErrorIs(t, err, commonErrors.ErrOutOfStock)

	cart, err := svc.FindCartByUserId(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), findLine(t, cart, product.ID, "M", "black").Quantity)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	product := newTestProduct(100, 10)
	svc, _ := newCartServiceFixture(product)
	userID := uuid.New()

	cart, err := svc.AddCartItem(context.Background(), userID, request.AddCartItem{
		ProductID: product.ID, Size: "M", Color: "black", Quantity: 1,
	})
	require.NoError(t, err)
	lineID := cart.Items[0].ID

	cart, err = svc.UpdateCartItemQuantity(
		context.Background(),
		userID,
		lineID,
		request.UpdateCartItemQuantity{Quantity: 7},
	)
	require.NoError(t, err)
	assert.Equal(t, int32(7), findLine(t, cart, product.ID, "M", "black").Quantity)
	assert.True(t, decimal.NewFromInt(700).Equal(cart.TotalPrice))
}

func TestUpdateCartItemQuantityExceedsStock(t *testing.T) {
	product := newTestProduct(100, 5)
	svc, _ := newCartServiceFixture(product)
	userID := uuid.New()

	cart, err := svc.AddCartItem(context.Background(), userID, request.AddCartItem{
		ProductID: product.ID, Size: "M", Color: "black", Quantity: 1,
	})
	require.NoError(t, err)

	_, err = svc.UpdateCartItemQuantity(
		context.Background(),
		userID,
		cart.Items[0].ID,
		request.UpdateCartItemQuantity{Quantity: 6},
	)
	assert.ErrorIs(t, err, commonErrors.ErrOutOfStock)
}

func TestUpdateCartItemQuantityUnknownLine(t *testing.T) {
	svc, _ := newCartServiceFixture()

	_, err := svc.UpdateCartItemQuantity(
		context.Background(),
		uuid.New(),
		uuid.New(),
		request.UpdateCartItemQuantity{Quantity: 1},
	)
	assert.ErrorIs(t, err, commonErrors.ErrNotFound)
}

func TestRemoveCartItemUnknownLineIsNoop(t *testing.T) {
	svc, _ := newCartServiceFixture()
	userID := uuid.New()

	cart, err := svc.RemoveCartItem(context.Background(), userID, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestRemoveCartItemUpdatesTotal(t *testing.T) {
	product := newTestProduct(100, 10)
	other := newTestProduct(50, 10)
	svc, _ := newCartServiceFixture(product, other)
	userID := uuid.New()

	_, err := svc.AddCartItem(context.Background(), userID, request.AddCartItem{
		ProductID: product.ID, Size: "M", Color: "black", Quantity: 2,
	})
	require.NoError(t, err)
	cart, err := svc.AddCartItem(context.Background(), userID, request.AddCartItem{
		ProductID: other.ID, Size: "S", Color: "grey", Quantity: 1,
	})
	require.NoError(t, err)

	lineID := findLine(t, cart, product.ID, "M", "black").ID
	cart, err = svc.RemoveCartItem(context.Background(), userID, lineID)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(cart.TotalPrice))
}

func TestClearCartDropsCachedCopy(t *testing.T) {
	product := newTestProduct(100, 10)
	repo := newFakeCartRepository()
	catalog := &fakeCatalog{products: map[uuid.UUID]repository.Product{product.ID: product}}
	cartsCache := newFakeCartCache()
	svc := NewCartService(repo, catalog, cartsCache)
	userID := uuid.New()

	_, err := svc.AddCartItem(context.Background(), userID, request.AddCartItem{
		ProductID: product.ID, Size: "M", Color: "black", Quantity: 1,
	})
	require.NoError(t, err)
	require.Contains(t, cartsCache.carts, userID)

	cart, err := svc.ClearCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, cartsCache.deletes)
	assert.Empty(t, cart.Items)
	assert.Empty(t, cartsCache.carts[userID].Items)
}

func TestClearCartIsIdempotent(t *testing.T) {
	product := newTestProduct(100, 10)
	svc, _ := newCartServiceFixture(product)
	userID := uuid.New()

	_, err := svc.AddCartItem(context.Background(), userID, request.AddCartItem{
		ProductID: product.ID, Size: "M", Color: "black", Quantity: 2,
	})
	require.NoError(t, err)

	cart, err := svc.ClearCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalPrice.IsZero())

	cart, err = svc.ClearCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestMergeLocalSumsQuantitiesPerLine(t *testing.T) {
	product := newTestProduct(100, 10)
	svc, _ := newCartServiceFixture(product)
	userID := uuid.New()

	_, err := svc.AddCartItem(context.Background(), userID, request.AddCartItem{
		ProductID: product.ID, Size: "M", Color: "black", Quantity: 2,
	})
	require.NoError(t, err)

	cart, err := svc.MergeLocal(context.Background(), userID, request.MergeLocal{
		Items: []request.LocalCartItem{
			{ProductID: product.ID, Size: "M", Color: "black", Quantity: 3},
			{ProductID: product.ID, Size: "L", Color: "grey", Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, int32(5), findLine(t, cart, product.ID, "M", "black").Quantity)
	assert.Equal(t, int32(1), findLine(t, cart, product.ID, "L", "grey").Quantity)
	assert.True(t, decimal.NewFromInt(600).Equal(cart.TotalPrice))
}

func TestMergeLocalSkipsUnavailableProducts(t *testing.T) {
	product := newTestProduct(100, 10)
	soldOut := newTestProduct(100, 0)
	svc, _ := newCartServiceFixture(product, soldOut)
	userID := uuid.New()

	cart, err := svc.MergeLocal(context.Background(), userID, request.MergeLocal{
		Items: []request.LocalCartItem{
			{ProductID: uuid.New(), Size: "M", Color: "black", Quantity: 1},
			{ProductID: soldOut.ID, Size: "M", Color: "black", Quantity: 1},
			{ProductID: product.ID, Size: "M", Color: "black", Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, int32(2), findLine(t, cart, product.ID, "M", "black").Quantity)
}
