package core

import "context"

// ProductStore is the persistence collaborator owning Product records.
// Implementations return *StoreError for transport/backend failures and
// *NotFoundError when the id does not exist.
type ProductStore interface {
	List(ctx context.Context) ([]Product, error)
	Insert(ctx context.Context, fields ProductFields) (*Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) error
	Delete(ctx context.Context, id string) error
}

// SaleStore is the persistence collaborator owning Sale records.
// GetByID exists for the delete-then-restore-stock flow.
type SaleStore interface {
	List(ctx context.Context) ([]Sale, error)
	GetByID(ctx context.Context, id string) (*Sale, error)
	Insert(ctx context.Context, fields SaleFields) (*Sale, error)
	Update(ctx context.Context, id string, fields SaleFields) error
	Delete(ctx context.Context, id string) error
}
