package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Nwoyi/staffing-api/internal/domain"
)

// memoryStaffRepository keeps staff members in insertion order inside the process.
type memoryStaffRepository struct {
	mu      sync.RWMutex
	records []domain.StaffMember
}

// NewMemoryStaffRepository returns an empty process-local store.
func NewMemoryStaffRepository() StaffRepository {
	return &memoryStaffRepository{}
}

func (r *memoryStaffRepository) Create(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == staff.ID {
			return fmt.Errorf("staff id %s already exists", staff.ID)
		}
		if r.records[i].Email == staff.Email {
			return ErrDuplicateEmail
		}
	}
	r.records = append(r.records, staff.Clone())
	return nil
}

func (r *memoryStaffRepository) List(_ context.Context, filter StaffFilter) ([]domain.StaffMember, int, error) {
	filter, err := filter.normalized()
	if err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	ordered := make([]domain.StaffMember, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		ordered = append(ordered, r.records[i].Clone())
	}
	r.mu.RUnlock()

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	total := len(ordered)
	if filter.Offset >= total {
		return []domain.StaffMember{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return ordered[filter.Offset:end], total, nil
}

func (r *memoryStaffRepository) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	staff := r.records[idx].Clone()
	return &staff, nil
}

func (r *memoryStaffRepository) Update(_ context.Context, id string, patch domain.StaffPatch, updatedAt time.Time) (*domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	if patch.Email != nil {
		for i := range r.records {
			if i != idx && r.records[i].Email == *patch.Email {
				return nil, ErrDuplicateEmail
			}
		}
	}

	staff := r.records[idx].Clone()
	staff.Apply(patch, updatedAt)
	r.records[idx] = staff
	result := staff.Clone()
	return &result, nil
}

func (r *memoryStaffRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	r.records = append(r.records[:idx], r.records[idx+1:]...)
	return nil
}

func (r *memoryStaffRepository) Close() error {
	return nil
}

// indexOf must be called with the lock held.
func (r *memoryStaffRepository) indexOf(id string) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}
