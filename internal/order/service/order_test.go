package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartResponse "github.com/almahera/storefront/cart/pkg/response"
	commonErrors "github.com/almahera/storefront/internal/errors"
	"github.com/almahera/storefront/internal/repository"
	"github.com/almahera/storefront/internal/token"
	"github.com/almahera/storefront/order/pkg/request"
)

type fakeOrderRepository struct {
	orders         map[uuid.UUID]repository.Order
	items          map[uuid.UUID][]repository.OrderItem
	createOrderErr error
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{
		orders: map[uuid.UUID]repository.Order{},
		items:  map[uuid.UUID][]repository.OrderItem{},
	}
}

// CreateOrder mirrors the transactional store: on failure nothing is
// persisted.
func (f *fakeOrderRepository) CreateOrder(
	_ context.Context,
	arg repository.InsertOrderParams,
	items []repository.InsertOrderItemParams,
) (repository.Order, []repository.OrderItem, error) {
	if f.createOrderErr != nil {
		return repository.Order{}, nil, f.createOrderErr
	}
	order := repository.Order{
		ID:            uuid.New(),
		UserID:        arg.UserID,
		Address:       arg.Address,
		City:          arg.City,
		PostalCode:    arg.PostalCode,
		Country:       arg.Country,
		PhoneNumber:   arg.PhoneNumber,
		PaymentMethod: arg.PaymentMethod,
		ItemsPrice:    arg.ItemsPrice,
		TaxPrice:      arg.TaxPrice,
		ShippingPrice: arg.ShippingPrice,
		TotalPrice:    arg.TotalPrice,
		Status:        repository.OrderStatusProcessing,
	}
	orderItems := make([]repository.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = repository.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			UnitPrice: item.UnitPrice,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		}
	}
	f.orders[order.ID] = order
	f.items[order.ID] = orderItems
	return order, orderItems, nil
}

func (f *fakeOrderRepository) FindOrderById(_ context.Context, id uuid.UUID) (repository.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return repository.Order{}, pgx.ErrNoRows
	}
	return order, nil
}

func (f *fakeOrderRepository) FindOrderItemsByOrderId(_ context.Context, orderID uuid.UUID) ([]repository.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepository) FindOrdersByUserId(_ context.Context, userID uuid.UUID) ([]repository.Order, error) {
	var orders []repository.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepository) FindOrders(_ context.Context) ([]repository.Order, error) {
	var orders []repository.Order
	for _, order := range f.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (f *fakeOrderRepository) UpdateOrderPaid(_ context.Context, arg repository.UpdateOrderPaidParams) (repository.Order, error) {
	order, ok := f.orders[arg.ID]
	if !ok {
		return repository.Order{}, pgx.ErrNoRows
	}
	order.IsPaid = true
	order.PaidAt = pgtype.Timestamptz{Valid: true}
	order.PaymentResult = arg.PaymentResult
	f.orders[arg.ID] = order
	return order, nil
}

func (f *fakeOrderRepository) UpdateOrderDelivered(_ context.Context, id uuid.UUID) (repository.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return repository.Order{}, pgx.ErrNoRows
	}
	order.IsDelivered = true
	order.DeliveredAt = pgtype.Timestamptz{Valid: true}
	f.orders[id] = order
	return order, nil
}

func (f *fakeOrderRepository) UpdateOrderStatus(_ context.Context, arg repository.UpdateOrderStatusParams) (repository.Order, error) {
	order, ok := f.orders[arg.ID]
	if !ok {
		return repository.Order{}, pgx.ErrNoRows
	}
	order.Status = arg.Status
	f.orders[arg.ID] = order
	return order, nil
}

type fakeCartStore struct {
	cart     cartResponse.Cart
	clearErr error
	cleared  bool
}

func (f *fakeCartStore) FindCartByUserId(_ context.Context, userID uuid.UUID) (cartResponse.Cart, error) {
	cart := f.cart
	cart.UserID = userID
	return cart, nil
}

func (f *fakeCartStore) ClearCart(_ context.Context, userID uuid.UUID) (cartResponse.Cart, error) {
	if f.clearErr != nil {
		return cartResponse.Cart{}, f.clearErr
	}
	f.cleared = true
	return cartResponse.Cart{UserID: userID}, nil
}

func cartWithLines(lines ...cartResponse.CartItem) cartResponse.Cart {
	return cartResponse.Cart{ID: uuid.New(), Items: lines}
}

func cartLine(price int64, quantity int32) cartResponse.CartItem {
	return cartResponse.CartItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Name:      "Wool Scarf",
		Image:     "https://cdn.example.com/scarf.jpg",
		UnitPrice: decimal.NewFromInt(price),
		Size:      "M",
		Color:     "red",
		Quantity:  quantity,
	}
}

func placeOrderRequest() request.PlaceOrder {
	return request.PlaceOrder{
		ShippingAddress: request.ShippingAddress{
			Address:     "1 Main Street",
			City:        "Springfield",
			PostalCode:  "12345",
			Country:     "USA",
			PhoneNumber: "+15551234567",
		},
		PaymentMethod: "paypal",
	}
}

func userIdentity() token.Identity {
	return token.Identity{UserID: uuid.New()}
}

func adminIdentity() token.Identity {
	return token.Identity{UserID: uuid.New(), IsAdmin: true}
}

func TestPlaceOrderFreezesPrices(t *testing.T) {
	repo := newFakeOrderRepository()
	carts := &fakeCartStore{cart: cartWithLines(cartLine(600, 2))}
	svc := NewOrderService(repo, carts)
	identity := userIdentity()

	order, err := svc.PlaceOrder(context.Background(), identity, placeOrderRequest())
	require.NoError(t, err)

	assert.Equal(t, identity.UserID, order.UserID)
	assert.True(t, decimal.NewFromInt(1200).Equal(order.ItemsPrice))
	assert.True(t, decimal.NewFromInt(180).Equal(order.TaxPrice))
	assert.True(t, order.ShippingPrice.IsZero())
	assert.True(t, decimal.NewFromInt(1380).Equal(order.TotalPrice))
	assert.Equal(t, "processing", order.Status)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsDelivered)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int32(2), order.Items[0].Quantity)
	assert.True(t, carts.cleared)
}

func TestPlaceOrderChargesShippingAtThreshold(t *testing.T) {
	repo := newFakeOrderRepository()
	carts := &fakeCartStore{cart: cartWithLines(cartLine(1000, 1))}
	svc := NewOrderService(repo, carts)

	order, err := svc.PlaceOrder(context.Background(), userIdentity(), placeOrderRequest())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(100).Equal(order.ShippingPrice))
	assert.True(t, decimal.NewFromInt(1250).Equal(order.TotalPrice))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepository(), &fakeCartStore{cart: cartWithLines()})

	_, err := svc.PlaceOrder(context.Background(), userIdentity(), placeOrderRequest())
	assert.ErrorIs(t, err, commonErrors.ErrEmptyCart)
}

func TestPlaceOrderSurvivesCartClearFailure(t *testing.T) {
	repo := newFakeOrderRepository()
	carts := &fakeCartStore{
		cart:     cartWithLines(cartLine(100, 1)),
		clearErr: errors.New("redis gone"),
	}
	svc := NewOrderService(repo, carts)

	order, err := svc.PlaceOrder(context.Background(), userIdentity(), placeOrderRequest())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(order.ItemsPrice))
}

func TestPlaceOrderInsertFailureLeavesNoOrder(t *testing.T) {
	repo := newFakeOrderRepository()
	repo.createOrderErr = errors.New("connection reset mid-insert")
	carts := &fakeCartStore{cart: cartWithLines(cartLine(600, 2))}
	svc := NewOrderService(repo, carts)

	_, err := svc.PlaceOrder(context.Background(), userIdentity(), placeOrderRequest())
	require.Error(t, err)

	// the write is all-or-nothing: no order, no items, cart untouched
	assert.Empty(t, repo.orders)
	assert.Empty(t, repo.items)
	assert.False(t, carts.cleared)
}

func TestFindOrderByIdOwnerOnly(t *testing.T) {
	repo := newFakeOrderRepository()
	carts := &fakeCartStore{cart: cartWithLines(cartLine(100, 1))}
	svc := NewOrderService(repo, carts)
	owner := userIdentity()

	placed, err := svc.PlaceOrder(context.Background(), owner, placeOrderRequest())
	require.NoError(t, err)

	found, err := svc.FindOrderById(context.Background(), owner, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, found.ID)

	_, err = svc.FindOrderById(context.Background(), userIdentity(), placed.ID)
	assert.ErrorIs(t, err, commonErrors.ErrForbidden)

	admin, err := svc.FindOrderById(context.Background(), adminIdentity(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, admin.ID)
}

func TestFindOrderByIdUnknown(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepository(), &fakeCartStore{})

	_, err := svc.FindOrderById(context.Background(), userIdentity(), uuid.New())
	assert.ErrorIs(t, err, commonErrors.ErrNotFound)
}

func TestFindOrdersRequiresAdmin(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepository(), &fakeCartStore{})

	_, err := svc.FindOrders(context.Background(), userIdentity())
	assert.ErrorIs(t, err, commonErrors.ErrForbidden)

	orders, err := svc.FindOrders(context.Background(), adminIdentity())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestMarkPaidStoresPaymentResult(t *testing.T) {
	repo := newFakeOrderRepository()
	carts := &fakeCartStore{cart: cartWithLines(cartLine(100, 1))}
	svc := NewOrderService(repo, carts)
	owner := userIdentity()

	placed, err := svc.PlaceOrder(context.Background(), owner, placeOrderRequest())
	require.NoError(t, err)

	paid, err := svc.MarkPaid(context.Background(), owner, placed.ID, request.PaymentResult{
		ID:     "PAY-1",
		Status: "COMPLETED",
	})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.NotNil(t, paid.PaidAt)

	stored := request.PaymentResult{}
	require.NoError(t, json.Unmarshal(repo.orders[placed.ID].PaymentResult, &stored))
	assert.Equal(t, "PAY-1", stored.ID)

	// gateway retry overwrites the previous callback
	_, err = svc.MarkPaid(context.Background(), owner, placed.ID, request.PaymentResult{
		ID:     "PAY-2",
		Status: "COMPLETED",
	})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(repo.orders[placed.ID].PaymentResult, &stored))
	assert.Equal(t, "PAY-2", stored.ID)
}

func TestMarkPaidForbiddenForStranger(t *testing.T) {
	repo := newFakeOrderRepository()
	carts := &fakeCartStore{cart: cartWithLines(cartLine(100, 1))}
	svc := NewOrderService(repo, carts)

	placed, err := svc.PlaceOrder(context.Background(), userIdentity(), placeOrderRequest())
	require.NoError(t, err)

	_, err = svc.MarkPaid(context.Background(), userIdentity(), placed.ID, request.PaymentResult{
		ID:     "PAY-1",
		Status: "COMPLETED",
	})
	assert.ErrorIs(t, err, commonErrors.ErrForbidden)
}

func TestMarkDeliveredRequiresAdmin(t *testing.T) {
	repo := newFakeOrderRepository()
	carts := &fakeCartStore{cart: cartWithLines(cartLine(100, 1))}
	svc := NewOrderService(repo, carts)
	owner := userIdentity()

	placed, err := svc.PlaceOrder(context.Background(), owner, placeOrderRequest())
	require.NoError(t, err)

	_, err = svc.MarkDelivered(context.Background(), owner, placed.ID)
	assert.ErrorIs(t, err, commonErrors.ErrForbidden)

	delivered, err := svc.MarkDelivered(context.Background(), adminIdentity(), placed.ID)
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
	assert.NotNil(t, delivered.DeliveredAt)
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo := newFakeOrderRepository()
	carts := &fakeCartStore{cart: cartWithLines(cartLine(100, 1))}
	svc := NewOrderService(repo, carts)
	admin := adminIdentity()

	placed, err := svc.PlaceOrder(context.Background(), userIdentity(), placeOrderRequest())
	require.NoError(t, err)

	// processing cannot jump straight to delivered
	_, err = svc.UpdateStatus(context.Background(), admin, placed.ID, request.UpdateOrderStatus{Status: "delivered"})
	assert.ErrorIs(t, err, commonErrors.ErrInvalidStatusTransition)

	shipped, err := svc.UpdateStatus(context.Background(), admin, placed.ID, request.UpdateOrderStatus{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, "shipped", shipped.Status)

	delivered, err := svc.UpdateStatus(context.Background(), admin, placed.ID, request.UpdateOrderStatus{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, "delivered", delivered.Status)

	// delivered is terminal
	_, err = svc.UpdateStatus(context.Background(), admin, placed.ID, request.UpdateOrderStatus{Status: "cancelled"})
	assert.ErrorIs(t, err, commonErrors.ErrInvalidStatusTransition)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := newFakeOrderRepository()
	carts := &fakeCartStore{cart: cartWithLines(cartLine(100, 1))}
	svc := NewOrderService(repo, carts)

	placed, err := svc.PlaceOrder(context.Background(), userIdentity(), placeOrderRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), adminIdentity(), placed.ID, request.UpdateOrderStatus{Status: "teleported"})
	assert.ErrorIs(t, err, commonErrors.ErrInvalidStatusTransition)
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	repo := newFakeOrderRepository()
	carts := &fakeCartStore{cart: cartWithLines(cartLine(100, 1))}
	svc := NewOrderService(repo, carts)
	owner := userIdentity()

	placed, err := svc.PlaceOrder(context.Background(), owner, placeOrderRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), owner, placed.ID, request.UpdateOrderStatus{Status: "shipped"})
	assert.ErrorIs(t, err, commonErrors.ErrForbidden)
}
