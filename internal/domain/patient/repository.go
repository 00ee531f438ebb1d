package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the boundary to the persistence engine. Any store capable of
// case-insensitive substring match and a unique constraint on email satisfies it.
type Repository interface {
	// List returns all patients in store order.
	List(ctx context.Context) ([]*Patient, error)

	// ListPage returns one page of patients plus the total element count.
	ListPage(ctx context.Context, q *ListQuery) (*PagedPatients, error)

	// GetByID retrieves a patient by primary key. Returns ErrPatientNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// ExistsByEmail checks the uniqueness invariant with an exact match.
	// A non-nil excludeID ignores that record (the update-side check).
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)

	// Case-insensitive substring searches.
	FindByNameContaining(ctx context.Context, name string) ([]*Patient, error)
	FindByEmailContaining(ctx context.Context, email string) ([]*Patient, error)
	FindByAddressContaining(ctx context.Context, address string) ([]*Patient, error)

	// Create persists a new patient and assigns its ID. Returns
	// ErrEmailAlreadyExists if the store rejects the write on the unique
	// email constraint; this is the authoritative guard under concurrency.
	Create(ctx context.Context, p *Patient) error

	// Update persists changes to an existing patient. Same duplicate-email
	// translation as Create.
	Update(ctx context.Context, p *Patient) error

	// Delete removes the patient permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
