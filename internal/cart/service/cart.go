package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/almahera/storefront/internal/cart/cache"
	"github.com/almahera/storefront/cart/pkg/request"
	"github.com/almahera/storefront/cart/pkg/response"
	"github.com/almahera/storefront/internal/constants"
	commonErrors "github.com/almahera/storefront/internal/errors"
	"github.com/almahera/storefront/internal/log"
	"github.com/almahera/storefront/internal/otel"
	"github.com/almahera/storefront/internal/pricing"
	"github.com/almahera/storefront/internal/repository"
)

type CartRepository interface {
	UpsertCart(c context.Context, userID uuid.UUID) (repository.Cart, error)
	FindCartByUserId(c context.Context, userID uuid.UUID) (repository.Cart, error)
	FindCartItemsByCartId(c context.Context, cartID uuid.UUID) ([]repository.CartItem, error)
	FindCartItemById(c context.Context, id uuid.UUID) (repository.CartItem, error)
	InsertCartItem(c context.Context, arg repository.InsertCartItemParams) (repository.CartItem, error)
	UpdateCartItemQuantity(c context.Context, arg repository.UpdateCartItemQuantityParams) (repository.CartItem, error)
	DeleteCartItem(c context.Context, arg repository.DeleteCartItemParams) error
	DeleteCartItems(c context.Context, cartID uuid.UUID) error
	UpdateCartTotal(c context.Context, arg repository.UpdateCartTotalParams) (repository.Cart, error)
}

type Catalog interface {
	FindProductById(c context.Context, id uuid.UUID) (repository.Product, error)
}

type CartService struct {
	queries CartRepository
	catalog Catalog
	cache   cache.CartCache
}

func NewCartService(
	queries CartRepository,
	catalog Catalog,
	cache cache.CartCache,
) CartService {
	return CartService{queries: queries, catalog: catalog, cache: cache}
}

func (svc CartService) FindCartByUserId(
	c context.Context,
	userID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCartByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartByUserId").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart in cache").Logger()
	cached, err := svc.cache.Get(c, userID)
	if err == nil {
		logger.Info().Msgf("found cart for userId=%s in cache", userID.String())
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Error().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart in database").Logger()
	logger.Info().Msgf("finding cart for userId=%s", userID.String())
	cart, err := svc.queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", userID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	items, err := svc.queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items for cartId=%s with error=%w", cart.ID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().
		Str(log.KeyCartID, cart.ID.String()).
		Int("count_cart_items", len(items)).
		Msgf("found cart for userId=%s", userID.String())

	resp := cart.Response(items)
	svc.setCache(c, userID, resp)
	return resp, nil
}

func (svc CartService) AddCartItem(
	c context.Context,
	userID uuid.UUID,
	param request.AddCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddCartItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, param.ProductID.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	cart, err := svc.queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", userID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "adding cart item").Logger()
	if err := svc.addLine(c, cart.ID, param); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("added productId=%s to cartId=%s", param.ProductID.String(), cart.ID.String())

	return svc.refreshCart(c, cart, userID)
}

func (svc CartService) UpdateCartItemQuantity(
	c context.Context,
	userID uuid.UUID,
	cartItemID uuid.UUID,
	param request.UpdateCartItemQuantity,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateCartItemQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateCartItemQuantity").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartItemID, cartItemID.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart item").Logger()
	cart, err := svc.queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", userID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	item, err := svc.queries.FindCartItemById(c, cartItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("cartItemId=%s %w", cartItemID.String(), commonErrors.ErrNotFound)
		} else {
			err = fmt.Errorf("failed finding cartItemId=%s with error=%w", cartItemID.String(), err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if item.CartID != cart.ID {
		err = fmt.Errorf("cartItemId=%s %w", cartItemID.String(), commonErrors.ErrNotFound)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "checking stock").Logger()
	product, err := svc.catalog.FindProductById(c, item.ProductID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("productId=%s %w", item.ProductID.String(), commonErrors.ErrNotFound)
		} else {
			err = fmt.Errorf("failed finding productId=%s with error=%w", item.ProductID.String(), err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if param.Quantity > product.CountInStock {
		err = fmt.Errorf(
			"requested quantity=%d exceeds stock=%d for productId=%s %w",
			param.Quantity,
			product.CountInStock,
			product.ID.String(),
			commonErrors.ErrOutOfStock,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating cart item quantity").Logger()
	_, err = svc.queries.UpdateCartItemQuantity(c, repository.UpdateCartItemQuantityParams{
		ID:       cartItemID,
		Quantity: param.Quantity,
	})
	if err != nil {
		err = fmt.Errorf("failed updating cartItemId=%s with error=%w", cartItemID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("updated cartItemId=%s to quantity=%d", cartItemID.String(), param.Quantity)

	return svc.refreshCart(c, cart, userID)
}

func (svc CartService) RemoveCartItem(
	c context.Context,
	userID uuid.UUID,
	cartItemID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCartItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartItemID, cartItemID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	cart, err := svc.queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", userID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	// removing a line that is already gone is fine
	err = svc.queries.DeleteCartItem(c, repository.DeleteCartItemParams{ID: cartItemID, CartID: cart.ID})
	if err != nil {
		err = fmt.Errorf("failed deleting cartItemId=%s with error=%w", cartItemID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("removed cartItemId=%s from cartId=%s", cartItemID.String(), cart.ID.String())

	return svc.refreshCart(c, cart, userID)
}

func (svc CartService) ClearCart(c context.Context, userID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	cart, err := svc.queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", userID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if err := svc.queries.DeleteCartItems(c, cart.ID); err != nil {
		err = fmt.Errorf("failed clearing cartId=%s with error=%w", cart.ID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("cleared cartId=%s", cart.ID.String())

	// drop the cached copy so the next read repopulates from the db
	if err := svc.cache.Delete(c, userID); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn().Err(err).Msgf("failed deleting cached cart for userId=%s", userID.String())
	}

	return svc.refreshCart(c, cart, userID)
}

// MergeLocal folds an anonymous browser cart into the authenticated user's
// cart. Lines whose product disappeared or ran out of stock are skipped, not
// fatal, so a stale local cart cannot block login.
func (svc CartService) MergeLocal(
	c context.Context,
	userID uuid.UUID,
	param request.MergeLocal,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService MergeLocal")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService MergeLocal").
		Str(log.KeyUserID, userID.String()).
		Int("count_local_items", len(param.Items)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "merging local cart").Logger()
	cart, err := svc.queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart for userId=%s with error=%w", userID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	for _, item := range param.Items {
		err := svc.addLine(c, cart.ID, request.AddCartItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		})
		if err != nil {
			if errors.Is(err, commonErrors.ErrNotFound) || errors.Is(err, commonErrors.ErrOutOfStock) {
				logger.Warn().
					Err(err).
					Str(log.KeyProductID, item.ProductID.String()).
					Msgf("skipped merging productId=%s", item.ProductID.String())
				continue
			}
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
	}
	logger.Info().Msgf("merged local cart into cartId=%s", cart.ID.String())

	return svc.refreshCart(c, cart, userID)
}

func (svc CartService) addLine(
	c context.Context,
	cartID uuid.UUID,
	param request.AddCartItem,
) error {
	product, err := svc.catalog.FindProductById(c, param.ProductID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("productId=%s %w", param.ProductID.String(), commonErrors.ErrNotFound)
		}
		return fmt.Errorf("failed finding productId=%s with error=%w", param.ProductID.String(), err)
	}
	if param.Quantity > product.CountInStock {
		return fmt.Errorf(
			"requested quantity=%d exceeds stock=%d for productId=%s %w",
			param.Quantity,
			product.CountInStock,
			product.ID.String(),
			commonErrors.ErrOutOfStock,
		)
	}

	items, err := svc.queries.FindCartItemsByCartId(c, cartID)
	if err != nil {
		return fmt.Errorf("failed finding cart items for cartId=%s with error=%w", cartID.String(), err)
	}
	for _, item := range items {
		if item.ProductID != param.ProductID || item.Size != param.Size || item.Color != param.Color {
			continue
		}
		combined := item.Quantity + param.Quantity
		if combined > product.CountInStock {
			return fmt.Errorf(
				"combined quantity=%d exceeds stock=%d for productId=%s %w",
				combined,
				product.CountInStock,
				product.ID.String(),
				commonErrors.ErrOutOfStock,
			)
		}
		_, err = svc.queries.UpdateCartItemQuantity(c, repository.UpdateCartItemQuantityParams{
			ID:       item.ID,
			Quantity: combined,
		})
		if err != nil {
			return fmt.Errorf("failed updating cartItemId=%s with error=%w", item.ID.String(), err)
		}
		return nil
	}

	image := constants.ImagePlaceholder
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	_, err = svc.queries.InsertCartItem(c, repository.InsertCartItemParams{
		CartID:    cartID,
		ProductID: product.ID,
		Name:      product.Name,
		Image:     image,
		UnitPrice: product.Price,
		Size:      param.Size,
		Color:     param.Color,
		Quantity:  param.Quantity,
	})
	if err != nil {
		return fmt.Errorf("failed inserting cart item for productId=%s with error=%w", product.ID.String(), err)
	}
	return nil
}

// refreshCart recomputes the cart total from its lines, persists it, and
// rewrites the cache entry.
func (svc CartService) refreshCart(
	c context.Context,
	cart repository.Cart,
	userID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService refreshCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService refreshCart").
		Str(log.KeyCartID, cart.ID.String()).
		Logger()

	items, err := svc.queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items for cartId=%s with error=%w", cart.ID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	lines := make([]pricing.Line, len(items))
	for i, item := range items {
		lines[i] = pricing.Line{
			UnitPrice: repository.DecimalFromNumeric(item.UnitPrice),
			Quantity:  item.Quantity,
		}
	}
	total := pricing.ItemsTotal(lines)
	cart, err = svc.queries.UpdateCartTotal(c, repository.UpdateCartTotalParams{
		ID:         cart.ID,
		TotalPrice: repository.NumericFromDecimal(total),
	})
	if err != nil {
		err = fmt.Errorf("failed updating total for cartId=%s with error=%w", cart.ID.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().
		Str(log.KeyTotalPrice, total.String()).
		Msgf("updated total for cartId=%s", cart.ID.String())

	resp := cart.Response(items)
	svc.setCache(c, userID, resp)
	return resp, nil
}

func (svc CartService) setCache(c context.Context, userID uuid.UUID, cart response.Cart) {
	if err := svc.cache.Set(c, userID, cart); err != nil {
		zerolog.Ctx(c).
			Error().
			Err(err).
			Str(log.KeyUserID, userID.String()).
			Msgf("failed caching cart for userId=%s", userID.String())
	}
}
