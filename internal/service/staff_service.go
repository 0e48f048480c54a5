package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nwoyi/staffing-api/internal/domain"
	"github.com/Nwoyi/staffing-api/internal/events"
	"github.com/Nwoyi/staffing-api/internal/repository"
	"github.com/Nwoyi/staffing-api/pkg/pagination"
	apperrors "github.com/Nwoyi/staffing-api/pkg/util/errorutil"
)

const staffResource = "Staff member"

// StaffService implements the staff CRUD operations on top of a repository.
type StaffService struct {
	staff  repository.StaffRepository
	events events.Dispatcher
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option customizes a StaffService.
type Option func(*StaffService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *StaffService) { s.now = now }
}

// WithIDGenerator overrides identifier assignment.
func WithIDGenerator(newID func() string) Option {
	return func(s *StaffService) { s.newID = newID }
}

// WithLogger attaches a logger used for event publication failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *StaffService) { s.logger = logger }
}

// NewStaffService constructs the service.
func NewStaffService(repo repository.StaffRepository, dispatcher events.Dispatcher, opts ...Option) *StaffService {
	if dispatcher == nil {
		dispatcher = events.Nop{}
	}
	s := &StaffService{
		staff:  repo,
		events: dispatcher,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateStaffInput carries the fields accepted on creation.
type CreateStaffInput struct {
	FirstName  string
	LastName   string
	Email      string
	Position   string
	Department *string
}

// ListResult is one page of staff members plus pagination metadata.
type ListResult struct {
	Items      []domain.StaffMember
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// Create persists a new active staff member.
func (s *StaffService) Create(ctx context.Context, input CreateStaffInput) (*domain.StaffMember, error) {
	now := domain.Timestamp(s.now())
	staff := &domain.StaffMember{
		ID:         s.newID(),
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Position:   input.Position,
		Department: input.Department,
		Status:     domain.StaffStatusActive,
		HireDate:   domain.DateOf(now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.staff.Create(ctx, staff); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail(err)
		}
		return nil, apperrors.NewStoreFailure(apperrors.CodeCreateFailed, err)
	}

	s.publish(ctx, events.EventStaffCreated, staff.ID, now, events.StaffCreatedPayload{
		Email:    staff.Email,
		Position: staff.Position,
	})
	return staff, nil
}

// List returns staff members ordered by creation time, newest first.
func (s *StaffService) List(ctx context.Context, page, limit int) (*ListResult, error) {
	params := pagination.Normalize(page, limit)

	items, total, err := s.staff.List(ctx, repository.StaffFilter{
		Limit:  params.Limit,
		Offset: params.Offset(),
	})
	if err != nil {
		return nil, apperrors.NewStoreFailure(apperrors.CodeListFailed, err)
	}
	if items == nil {
		items = []domain.StaffMember{}
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pagination.TotalPages(total, params.Limit),
	}, nil
}

// GetByID fetches a staff member.
func (s *StaffService) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, apperrors.CodeFetchFailed)
	}
	return staff, nil
}

// Update applies a partial update and refreshes updatedAt.
func (s *StaffService) Update(ctx context.Context, id string, patch domain.StaffPatch) (*domain.StaffMember, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.NewValidationError("Status must be one of: active, inactive, on_leave", map[string]any{
			"field": "status",
			"value": string(*patch.Status),
		})
	}

	now := domain.Timestamp(s.now())
	staff, err := s.staff.Update(ctx, id, patch, now)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail(err)
		}
		return nil, mapLookupError(err, apperrors.CodeUpdateFailed)
	}

	s.publish(ctx, events.EventStaffUpdated, staff.ID, staff.UpdatedAt, events.StaffUpdatedPayload{
		Fields: patch.Fields(),
	})
	return staff, nil
}

// Delete removes a staff member.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	if err := s.staff.Delete(ctx, id); err != nil {
		return mapLookupError(err, apperrors.CodeDeleteFailed)
	}
	s.publish(ctx, events.EventStaffDeleted, id, domain.Timestamp(s.now()), events.StaffDeletedPayload{})
	return nil
}

func (s *StaffService) publish(ctx context.Context, eventType events.EventType, staffID string, at time.Time, payload any) {
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		StaffID:   staffID,
		Timestamp: at,
		Payload:   payload,
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}

func mapLookupError(err error, failureCode string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(staffResource)
	}
	return apperrors.NewStoreFailure(failureCode, err)
}
