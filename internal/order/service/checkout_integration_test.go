package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	cartCache "github.com/almahera/storefront/internal/cart/cache"
	cartService "github.com/almahera/storefront/internal/cart/service"
	cartRequest "github.com/almahera/storefront/cart/pkg/request"
	"github.com/almahera/storefront/internal/infra"
	"github.com/almahera/storefront/internal/repository"
	"github.com/almahera/storefront/internal/token"
	"github.com/almahera/storefront/order/pkg/request"
)

type checkoutFixture struct {
	queries *repository.Store
	carts   cartService.CartService
	orders  OrderService
	pool    *pgxpool.Pool
	redis   *redis.Client
}

func setupCheckout(t *testing.T, c context.Context) checkoutFixture {
	t.Helper()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join("..", "..", "..", "db", "migrations", "000001_init.up.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	pgConnStr, err := pgContainer.ConnectionString(c, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pgConfig, err := infra.NewPoolConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pool config with error: %s", err)
	}
	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}
	t.Cleanup(pool.Close)
	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}
	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}
	redisClient := redis.NewClient(redisOpt)
	t.Cleanup(func() { redisClient.Close() })
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}

	queries := repository.NewStore(pool)
	carts := cartService.NewCartService(queries, queries, cartCache.NewRedisCartCache(redisClient))
	orders := NewOrderService(queries, carts)
	return checkoutFixture{
		queries: queries,
		carts:   carts,
		orders:  orders,
		pool:    pool,
		redis:   redisClient,
	}
}

func (f checkoutFixture) seedUser(t *testing.T, c context.Context, name, email string, isAdmin bool) repository.User {
	t.Helper()
	user, err := f.queries.InsertUser(c, repository.InsertUserParams{
		Name:     name,
		Email:    email,
		Password: "not-a-real-hash",
		IsAdmin:  isAdmin,
	})
	require.NoError(t, err)
	return user
}

func (f checkoutFixture) seedProduct(t *testing.T, c context.Context, name string, price float64, stock int32) repository.Product {
	t.Helper()
	product, err := f.queries.InsertProduct(c, repository.InsertProductParams{
		Name:         name,
		Description:  "integration test product",
		Images:       []string{"/images/test.jpg"},
		Category:     repository.ProductCategoryMens,
		Sizes:        []string{"M", "L"},
		Colors:       []string{"black"},
		Price:        repository.NumericFromDecimal(decimal.NewFromFloat(price)),
		CountInStock: stock,
	})
	require.NoError(t, err)
	return product
}

func TestCheckoutFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	c := context.Background()
	fixture := setupCheckout(t, c)

	shopper := fixture.seedUser(t, c, "Shopper", "shopper@example.com", false)
	admin := fixture.seedUser(t, c, "Admin", "admin@example.com", true)
	product := fixture.seedProduct(t, c, "Wool Coat", 600, 10)

	asShopper := token.Identity{UserID: shopper.ID}
	asAdmin := token.Identity{UserID: admin.ID, IsAdmin: true}

	// Two adds of the same line consolidate into one cart item.
	_, err := fixture.carts.AddCartItem(c, shopper.ID, cartRequest.AddCartItem{
		ProductID: product.ID,
		Size:      "M",
		Color:     "black",
		Quantity:  1,
	})
	require.NoError(t, err)
	cart, err := fixture.carts.AddCartItem(c, shopper.ID, cartRequest.AddCartItem{
		ProductID: product.ID,
		Size:      "M",
		Color:     "black",
		Quantity:  1,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int32(2), cart.Items[0].Quantity)
	assert.True(t, cart.TotalPrice.Equal(decimal.NewFromInt(1200)))

	order, err := fixture.orders.PlaceOrder(c, asShopper, request.PlaceOrder{
		ShippingAddress: request.ShippingAddress{
			Address:     "1 Main St",
			City:        "Springfield",
			PostalCode:  "12345",
			Country:     "US",
			PhoneNumber: "+15550100",
		},
		PaymentMethod: "paypal",
	})
	require.NoError(t, err)
	assert.True(t, order.ItemsPrice.Equal(decimal.NewFromInt(1200)))
	assert.True(t, order.TaxPrice.Equal(decimal.NewFromInt(180)))
	assert.True(t, order.ShippingPrice.IsZero())
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(1380)))
	assert.Equal(t, "processing", order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int32(2), order.Items[0].Quantity)

	// Checkout empties the cart.
	cart, err = fixture.carts.FindCartByUserId(c, shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalPrice.IsZero())

	paid, err := fixture.orders.MarkPaid(c, asShopper, order.ID, request.PaymentResult{
		ID:           "PAY-123",
		Status:       "COMPLETED",
		EmailAddress: "shopper@example.com",
	})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidAt)

	shipped, err := fixture.orders.UpdateStatus(c, asAdmin, order.ID, request.UpdateOrderStatus{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, "shipped", shipped.Status)

	delivered, err := fixture.orders.UpdateStatus(c, asAdmin, order.ID, request.UpdateOrderStatus{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, "delivered", delivered.Status)

	found, err := fixture.orders.FindOrderById(c, asShopper, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "delivered", found.Status)
	assert.True(t, found.IsPaid)
}
