package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	cartResponse "github.com/almahera/storefront/cart/pkg/response"
	commonErrors "github.com/almahera/storefront/internal/errors"
	"github.com/almahera/storefront/internal/log"
	"github.com/almahera/storefront/internal/otel"
	"github.com/almahera/storefront/internal/pricing"
	"github.com/almahera/storefront/internal/repository"
	"github.com/almahera/storefront/internal/token"
	"github.com/almahera/storefront/order/pkg/request"
	"github.com/almahera/storefront/order/pkg/response"
)

type OrderRepository interface {
	CreateOrder(c context.Context, arg repository.InsertOrderParams, items []repository.InsertOrderItemParams) (repository.Order, []repository.OrderItem, error)
	FindOrderById(c context.Context, id uuid.UUID) (repository.Order, error)
	FindOrderItemsByOrderId(c context.Context, orderID uuid.UUID) ([]repository.OrderItem, error)
	FindOrdersByUserId(c context.Context, userID uuid.UUID) ([]repository.Order, error)
	FindOrders(c context.Context) ([]repository.Order, error)
	UpdateOrderPaid(c context.Context, arg repository.UpdateOrderPaidParams) (repository.Order, error)
	UpdateOrderDelivered(c context.Context, id uuid.UUID) (repository.Order, error)
	UpdateOrderStatus(c context.Context, arg repository.UpdateOrderStatusParams) (repository.Order, error)
}

// CartStore is the cart half of checkout. The order is priced from the
// server-side cart, never from quantities the client sends.
type CartStore interface {
	FindCartByUserId(c context.Context, userID uuid.UUID) (cartResponse.Cart, error)
	ClearCart(c context.Context, userID uuid.UUID) (cartResponse.Cart, error)
}

// statusTransitions is the order lifecycle. Delivered and cancelled are
// terminal.
var statusTransitions = map[repository.OrderStatus][]repository.OrderStatus{
	repository.OrderStatusProcessing: {repository.OrderStatusShipped, repository.OrderStatusCancelled},
	repository.OrderStatusShipped:    {repository.OrderStatusDelivered, repository.OrderStatusCancelled},
	repository.OrderStatusDelivered:  {},
	repository.OrderStatusCancelled:  {},
}

type OrderService struct {
	queries OrderRepository
	carts   CartStore
}

func NewOrderService(queries OrderRepository, carts CartStore) OrderService {
	return OrderService{queries: queries, carts: carts}
}

func (svc OrderService) PlaceOrder(
	c context.Context,
	identity token.Identity,
	param request.PlaceOrder,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService PlaceOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService PlaceOrder").
		Str(log.KeyUserID, identity.UserID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := svc.carts.FindCartByUserId(c, identity.UserID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", identity.UserID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if len(cart.Items) == 0 {
		err = fmt.Errorf("cart for userId=%s %w", identity.UserID.String(), commonErrors.ErrEmptyCart)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().
		Str(log.KeyCartID, cart.ID.String()).
		Int("count_cart_items", len(cart.Items)).
		Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "pricing order").Logger()
	lines := make([]pricing.Line, len(cart.Items))
	for i, item := range cart.Items {
		lines[i] = pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity}
	}
	itemsPrice := pricing.ItemsTotal(lines)
	taxPrice, shippingPrice, totalPrice := pricing.Quote(itemsPrice)
	logger.Info().
		Str(log.KeyTotalPrice, totalPrice.String()).
		Msgf("priced order itemsPrice=%s taxPrice=%s shippingPrice=%s totalPrice=%s",
			itemsPrice.String(),
			taxPrice.String(),
			shippingPrice.String(),
			totalPrice.String())

	itemParams := make([]repository.InsertOrderItemParams, len(cart.Items))
	for i, item := range cart.Items {
		itemParams[i] = repository.InsertOrderItemParams{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			UnitPrice: repository.NumericFromDecimal(item.UnitPrice),
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		}
	}

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	order, orderItems, err := svc.queries.CreateOrder(c, repository.InsertOrderParams{
		UserID:        identity.UserID,
		Address:       param.ShippingAddress.Address,
		City:          param.ShippingAddress.City,
		PostalCode:    param.ShippingAddress.PostalCode,
		Country:       param.ShippingAddress.Country,
		PhoneNumber:   param.ShippingAddress.PhoneNumber,
		PaymentMethod: param.PaymentMethod,
		ItemsPrice:    repository.NumericFromDecimal(itemsPrice),
		TaxPrice:      repository.NumericFromDecimal(taxPrice),
		ShippingPrice: repository.NumericFromDecimal(shippingPrice),
		TotalPrice:    repository.NumericFromDecimal(totalPrice),
	}, itemParams)
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msgf("inserted orderId=%s with %d items", order.ID.String(), len(orderItems))

	// the order is already durable, a failed cart clear must not undo checkout
	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	if _, err := svc.carts.ClearCart(c, identity.UserID); err != nil {
		logger.Warn().Err(err).Msgf("failed clearing cart for userId=%s", identity.UserID.String())
	} else {
		logger.Info().Msgf("cleared cart for userId=%s", identity.UserID.String())
	}

	return order.Response(orderItems), nil
}

func (svc OrderService) FindOrderById(
	c context.Context,
	identity token.Identity,
	orderID uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyUserID, identity.UserID.String()).
		Str(log.KeyOrderID, orderID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msgf("finding orderId=%s", orderID.String())
	order, err := svc.findOwnedOrder(c, identity, orderID)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	items, err := svc.queries.FindOrderItemsByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items for orderId=%s with error=%w", orderID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("found orderId=%s", orderID.String())

	return order.Response(items), nil
}

func (svc OrderService) FindOrdersByUserId(
	c context.Context,
	userID uuid.UUID,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrdersByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrdersByUserId").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msgf("finding orders for userId=%s", userID.String())
	orders, err := svc.queries.FindOrdersByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding orders for userId=%s with error=%w", userID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders for userId=%s", len(orders), userID.String())

	return svc.respondOrders(c, orders)
}

func (svc OrderService) FindOrders(
	c context.Context,
	identity token.Identity,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrders").
		Str(log.KeyUserID, identity.UserID.String()).
		Logger()

	if !identity.IsAdmin {
		err := fmt.Errorf("userId=%s is not an admin %w", identity.UserID.String(), commonErrors.ErrForbidden)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	orders, err := svc.queries.FindOrders(c)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders", len(orders))

	return svc.respondOrders(c, orders)
}

// MarkPaid records the payment gateway callback on the order. Replaying the
// callback overwrites the stored payment result, which keeps retries safe.
func (svc OrderService) MarkPaid(
	c context.Context,
	identity token.Identity,
	orderID uuid.UUID,
	param request.PaymentResult,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService MarkPaid")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService MarkPaid").
		Str(log.KeyUserID, identity.UserID.String()).
		Str(log.KeyOrderID, orderID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	order, err := svc.findOwnedOrder(c, identity, orderID)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "marking order paid").Logger()
	logger.Info().Msgf("marking orderId=%s paid", orderID.String())
	paymentResult, err := json.Marshal(param)
	if err != nil {
		err = fmt.Errorf("failed marshaling payment result with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	order, err = svc.queries.UpdateOrderPaid(c, repository.UpdateOrderPaidParams{
		ID:            order.ID,
		PaymentResult: paymentResult,
	})
	if err != nil {
		err = fmt.Errorf("failed marking orderId=%s paid with error=%w", orderID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("marked orderId=%s paid", orderID.String())

	items, err := svc.queries.FindOrderItemsByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items for orderId=%s with error=%w", orderID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	return order.Response(items), nil
}

func (svc OrderService) MarkDelivered(
	c context.Context,
	identity token.Identity,
	orderID uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService MarkDelivered")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService MarkDelivered").
		Str(log.KeyUserID, identity.UserID.String()).
		Str(log.KeyOrderID, orderID.String()).
		Logger()

	if !identity.IsAdmin {
		err := fmt.Errorf("userId=%s is not an admin %w", identity.UserID.String(), commonErrors.ErrForbidden)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "marking order delivered").Logger()
	logger.Info().Msgf("marking orderId=%s delivered", orderID.String())
	order, err := svc.queries.FindOrderById(c, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("orderId=%s %w", orderID.String(), commonErrors.ErrNotFound)
		} else {
			err = fmt.Errorf("failed finding orderId=%s with error=%w", orderID.String(), err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	order, err = svc.queries.UpdateOrderDelivered(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed marking orderId=%s delivered with error=%w", orderID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("marked orderId=%s delivered", orderID.String())

	items, err := svc.queries.FindOrderItemsByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items for orderId=%s with error=%w", orderID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	return order.Response(items), nil
}

func (svc OrderService) UpdateStatus(
	c context.Context,
	identity token.Identity,
	orderID uuid.UUID,
	param request.UpdateOrderStatus,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService UpdateStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService UpdateStatus").
		Str(log.KeyUserID, identity.UserID.String()).
		Str(log.KeyOrderID, orderID.String()).
		Str(log.KeyStatus, param.Status).
		Logger()

	if !identity.IsAdmin {
		err := fmt.Errorf("userId=%s is not an admin %w", identity.UserID.String(), commonErrors.ErrForbidden)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	next := repository.OrderStatus(param.Status)
	if _, known := statusTransitions[next]; !known {
		err := fmt.Errorf("unknown status=%s %w", param.Status, commonErrors.ErrInvalidStatusTransition)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	order, err := svc.queries.FindOrderById(c, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("orderId=%s %w", orderID.String(), commonErrors.ErrNotFound)
		} else {
			err = fmt.Errorf("failed finding orderId=%s with error=%w", orderID.String(), err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	allowed := false
	for _, candidate := range statusTransitions[order.Status] {
		if candidate == next {
			allowed = true
			break
		}
	}
	if !allowed {
		err = fmt.Errorf(
			"transition from status=%s to status=%s %w",
			order.Status,
			next,
			commonErrors.ErrInvalidStatusTransition,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating order status").Logger()
	logger.Info().Msgf("updating orderId=%s to status=%s", orderID.String(), next)
	order, err = svc.queries.UpdateOrderStatus(c, repository.UpdateOrderStatusParams{
		ID:     order.ID,
		Status: next,
	})
	if err != nil {
		err = fmt.Errorf("failed updating status for orderId=%s with error=%w", orderID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("updated orderId=%s to status=%s", orderID.String(), next)

	items, err := svc.queries.FindOrderItemsByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items for orderId=%s with error=%w", orderID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	return order.Response(items), nil
}

// findOwnedOrder loads the order and enforces owner-or-admin access.
func (svc OrderService) findOwnedOrder(
	c context.Context,
	identity token.Identity,
	orderID uuid.UUID,
) (repository.Order, error) {
	order, err := svc.queries.FindOrderById(c, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Order{}, fmt.Errorf("orderId=%s %w", orderID.String(), commonErrors.ErrNotFound)
		}
		return repository.Order{}, fmt.Errorf("failed finding orderId=%s with error=%w", orderID.String(), err)
	}
	if order.UserID != identity.UserID && !identity.IsAdmin {
		return repository.Order{}, fmt.Errorf(
			"userId=%s cannot access orderId=%s %w",
			identity.UserID.String(),
			orderID.String(),
			commonErrors.ErrForbidden,
		)
	}
	return order, nil
}

func (svc OrderService) respondOrders(
	c context.Context,
	orders []repository.Order,
) ([]response.Order, error) {
	responses := make([]response.Order, len(orders))
	for i, order := range orders {
		items, err := svc.queries.FindOrderItemsByOrderId(c, order.ID)
		if err != nil {
			return nil, fmt.Errorf("failed finding order items for orderId=%s with error=%w", order.ID.String(), err)
		}
		responses[i] = order.Response(items)
	}
	return responses, nil
}
