package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nwoyi/staffing-api/internal/domain"
)

var (
	// ErrNotFound is returned when no staff member matches the identifier.
	ErrNotFound = errors.New("staff member not found")
	// ErrDuplicateEmail is returned when another staff member already uses the email.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInvalidFilter is returned for a negative list offset.
	ErrInvalidFilter = errors.New("invalid staff filter")
)

// StaffRepository handles persistence for staff members.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, int, error)
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	Update(ctx context.Context, id string, patch domain.StaffPatch, updatedAt time.Time) (*domain.StaffMember, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Pinger is implemented by stores backed by an external service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StaffFilter defines the pagination window for staff listing.
type StaffFilter struct {
	Limit  int
	Offset int
}

const defaultListLimit = 20

func (f StaffFilter) normalized() (StaffFilter, error) {
	if f.Offset < 0 {
		return f, fmt.Errorf("%w: offset %d", ErrInvalidFilter, f.Offset)
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	return f, nil
}
