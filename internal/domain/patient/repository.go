package patient

import "context"

type Repository interface {
	// Insert persists a new patient, assigning ID and CreatedAt and
	// forcing Deleted to false. Returns ErrDuplicateInsurance when an
	// active row already holds the same insurance number.
	Insert(ctx context.Context, p *Patient) error

	// FindByID retrieves a row by primary key regardless of its deleted
	// flag, or (nil, nil) when no such row exists. The service layer
	// decides what "not found" means.
	FindByID(ctx context.Context, id int64) (*Patient, error)

	// Update persists the mutable fields plus the deleted flag. ID and
	// CreatedAt are never written. Returns ErrDuplicateInsurance on an
	// active insurance-number collision.
	Update(ctx context.Context, p *Patient) error

	// FindActive returns all non-deleted rows in insertion order.
	FindActive(ctx context.Context) ([]*Patient, error)

	// ExistsByInsuranceNumber checks for an active row with the given
	// insurance number without fetching it.
	ExistsByInsuranceNumber(ctx context.Context, insuranceNumber string) (bool, error)

	CountActive(ctx context.Context) (int64, error)
	CountByGender(ctx context.Context, g Gender) (int64, error)

	// CountBornBefore counts active rows with date of birth strictly
	// before d.
	CountBornBefore(ctx context.Context, d Date) (int64, error)

	// Search returns active rows matching every set filter field, in
	// insertion order.
	Search(ctx context.Context, f Filter) ([]*Patient, error)
}
