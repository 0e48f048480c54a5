package repository

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nwoyi/staffing-api/internal/domain"
)

var baseTime = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newStaff(n int, email string) *domain.StaffMember {
	at := baseTime.Add(time.Duration(n) * time.Minute)
	return &domain.StaffMember{
		ID:        uuid.NewString(),
		FirstName: fmt.Sprintf("First%d", n),
		LastName:  fmt.Sprintf("Last%d", n),
		Email:     email,
		Position:  "Developer",
		Status:    domain.StaffStatusActive,
		HireDate:  domain.DateOf(at),
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func strPtr(s string) *string { return &s }

// runStaffRepositoryContract exercises the behavior every store must share.
func runStaffRepositoryContract(t *testing.T, newRepo func(t *testing.T) StaffRepository) {
	ctx := context.Background()

	t.Run("create then get round-trips", func(t *testing.T) {
		repo := newRepo(t)
		staff := newStaff(1, "john@example.com")
		staff.Department = strPtr("Engineering")
		require.NoError(t, repo.Create(ctx, staff))

		got, err := repo.GetByID(ctx, staff.ID)
		require.NoError(t, err)
		assert.Equal(t, *staff, *got)
	})

	t.Run("duplicate email is rejected without side effects", func(t *testing.T) {
		repo := newRepo(t)
		first := newStaff(1, "dup@example.com")
		require.NoError(t, repo.Create(ctx, first))

		second := newStaff(2, "dup@example.com")
		err := repo.Create(ctx, second)
		assert.ErrorIs(t, err, ErrDuplicateEmail)

		_, err = repo.GetByID(ctx, second.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		items, total, err := repo.List(ctx, StaffFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, first.ID, items[0].ID)
	})

	t.Run("list is newest first and windowed", func(t *testing.T) {
		repo := newRepo(t)
		var ids []string
		for i := 0; i < 5; i++ {
			staff := newStaff(i, fmt.Sprintf("user%d@example.com", i))
			require.NoError(t, repo.Create(ctx, staff))
			ids = append(ids, staff.ID)
		}

		page1, total, err := repo.List(ctx, StaffFilter{Limit: 2, Offset: 0})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, page1, 2)
		assert.Equal(t, ids[4], page1[0].ID)
		assert.Equal(t, ids[3], page1[1].ID)

		page3, _, err := repo.List(ctx, StaffFilter{Limit: 2, Offset: 4})
		require.NoError(t, err)
		require.Len(t, page3, 1)
		assert.Equal(t, ids[0], page3[0].ID)

		beyond, total, err := repo.List(ctx, StaffFilter{Limit: 2, Offset: 10})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Empty(t, beyond)
	})

	t.Run("list rejects a negative offset", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newStaff(1, "neg@example.com")))

		items, _, err := repo.List(ctx, StaffFilter{Limit: 10, Offset: -1})
		assert.ErrorIs(t, err, ErrInvalidFilter)
		assert.Empty(t, items)
	})

	t.Run("list with a saturated offset is empty", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newStaff(1, "far@example.com")))

		items, total, err := repo.List(ctx, StaffFilter{Limit: 100, Offset: math.MaxInt})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Empty(t, items)
	})

	t.Run("list on empty store", func(t *testing.T) {
		repo := newRepo(t)
		items, total, err := repo.List(ctx, StaffFilter{Limit: 20})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, items)
	})

	t.Run("update merges only supplied fields", func(t *testing.T) {
		repo := newRepo(t)
		staff := newStaff(1, "merge@example.com")
		require.NoError(t, repo.Create(ctx, staff))

		later := staff.UpdatedAt.Add(time.Hour)
		status := domain.StaffStatusOnLeave
		updated, err := repo.Update(ctx, staff.ID, domain.StaffPatch{
			Position: strPtr("Senior Developer"),
			Status:   &status,
		}, later)
		require.NoError(t, err)

		assert.Equal(t, "Senior Developer", updated.Position)
		assert.Equal(t, domain.StaffStatusOnLeave, updated.Status)
		assert.Equal(t, staff.FirstName, updated.FirstName)
		assert.Equal(t, staff.Email, updated.Email)
		assert.Equal(t, staff.ID, updated.ID)
		assert.True(t, updated.CreatedAt.Equal(staff.CreatedAt))
		assert.True(t, updated.UpdatedAt.Equal(later))

		got, err := repo.GetByID(ctx, staff.ID)
		require.NoError(t, err)
		assert.Equal(t, *updated, *got)
	})

	t.Run("update keeps updatedAt strictly increasing", func(t *testing.T) {
		repo := newRepo(t)
		staff := newStaff(1, "clock@example.com")
		require.NoError(t, repo.Create(ctx, staff))

		updated, err := repo.Update(ctx, staff.ID, domain.StaffPatch{}, staff.UpdatedAt)
		require.NoError(t, err)
		assert.True(t, updated.UpdatedAt.After(staff.UpdatedAt))
	})

	t.Run("update to an email in use fails", func(t *testing.T) {
		repo := newRepo(t)
		a := newStaff(1, "a@example.com")
		b := newStaff(2, "b@example.com")
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		_, err := repo.Update(ctx, b.ID, domain.StaffPatch{Email: strPtr("a@example.com")}, baseTime.Add(time.Hour))
		assert.ErrorIs(t, err, ErrDuplicateEmail)

		got, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "b@example.com", got.Email)
	})

	t.Run("missing ids report not found", func(t *testing.T) {
		repo := newRepo(t)
		missing := uuid.NewString()

		_, err := repo.GetByID(ctx, missing)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.Update(ctx, missing, domain.StaffPatch{Position: strPtr("X")}, baseTime)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, missing), ErrNotFound)
	})

	t.Run("delete removes the record and frees the email", func(t *testing.T) {
		repo := newRepo(t)
		staff := newStaff(1, "gone@example.com")
		require.NoError(t, repo.Create(ctx, staff))

		require.NoError(t, repo.Delete(ctx, staff.ID))

		_, err := repo.GetByID(ctx, staff.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, total, err := repo.List(ctx, StaffFilter{Limit: 10})
		require.NoError(t, err)
		assert.Zero(t, total)

		require.NoError(t, repo.Create(ctx, newStaff(2, "gone@example.com")))
	})
}
