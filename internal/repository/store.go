package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store composes the generated Queries with the pool so multi-statement
// writes can run inside one transaction.
type Store struct {
	*Queries
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Queries: New(pool), pool: pool}
}

// CreateOrder inserts the order and all of its items in a single
// transaction. Either the whole order lands or none of it does.
func (s *Store) CreateOrder(
	c context.Context,
	arg InsertOrderParams,
	items []InsertOrderItemParams,
) (Order, []OrderItem, error) {
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		return Order{}, nil, fmt.Errorf("failed beginning transaction with error=%w", err)
	}
	// rollback is a no-op after commit
	defer func() { _ = tx.Rollback(c) }()

	qtx := s.Queries.WithTx(tx)
	order, err := qtx.InsertOrder(c, arg)
	if err != nil {
		return Order{}, nil, fmt.Errorf("failed inserting order with error=%w", err)
	}

	orderItems := make([]OrderItem, len(items))
	for i, item := range items {
		item.OrderID = order.ID
		orderItem, err := qtx.InsertOrderItem(c, item)
		if err != nil {
			return Order{}, nil, fmt.Errorf(
				"failed inserting order item for productId=%s with error=%w",
				item.ProductID.String(),
				err,
			)
		}
		orderItems[i] = orderItem
	}

	if err := tx.Commit(c); err != nil {
		return Order{}, nil, fmt.Errorf("failed committing transaction with error=%w", err)
	}
	return order, orderItems, nil
}
