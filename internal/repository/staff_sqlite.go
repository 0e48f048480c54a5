package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Nwoyi/staffing-api/internal/domain"
)

// staffRow is the gorm model for the staff table.
type staffRow struct {
	ID         string    `gorm:"primaryKey;type:text"`
	FirstName  string    `gorm:"not null"`
	LastName   string    `gorm:"not null"`
	Email      string    `gorm:"not null;uniqueIndex:staff_email_key"`
	Position   string    `gorm:"not null"`
	Department *string
	Status     string    `gorm:"not null;default:active"`
	HireDate   time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;index:staff_created_at_idx,sort:desc"`
	UpdatedAt  time.Time `gorm:"not null"`
	Seq        int64     `gorm:"not null;index"`
}

func (staffRow) TableName() string {
	return "staff"
}

func rowFromStaff(staff *domain.StaffMember) staffRow {
	return staffRow{
		ID:         staff.ID,
		FirstName:  staff.FirstName,
		LastName:   staff.LastName,
		Email:      staff.Email,
		Position:   staff.Position,
		Department: staff.Department,
		Status:     string(staff.Status),
		HireDate:   staff.HireDate.Time(),
		CreatedAt:  staff.CreatedAt,
		UpdatedAt:  staff.UpdatedAt,
	}
}

func (r staffRow) toDomain() domain.StaffMember {
	return domain.StaffMember{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Position:   r.Position,
		Department: r.Department,
		Status:     domain.StaffStatus(r.Status),
		HireDate:   domain.DateOf(r.HireDate),
		CreatedAt:  domain.Timestamp(r.CreatedAt),
		UpdatedAt:  domain.Timestamp(r.UpdatedAt),
	}
}

type sqliteStaffRepository struct {
	db *gorm.DB
}

// NewSQLiteStaffRepository migrates the staff table and returns a gorm-backed repository.
func NewSQLiteStaffRepository(db *gorm.DB) (StaffRepository, error) {
	if err := db.AutoMigrate(&staffRow{}); err != nil {
		return nil, fmt.Errorf("migrate staff table: %w", err)
	}
	return &sqliteStaffRepository{db: db}, nil
}

func (r *sqliteStaffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq int64
		if err := tx.Model(&staffRow{}).Select("COALESCE(MAX(seq), 0)").Scan(&seq).Error; err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		row := rowFromStaff(staff)
		row.Seq = seq + 1
		return mapGormError(tx.Create(&row).Error)
	})
}

func (r *sqliteStaffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, int, error) {
	filter, err := filter.normalized()
	if err != nil {
		return nil, 0, err
	}
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&staffRow{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count staff: %w", err)
	}

	var rows []staffRow
	err = db.Order("created_at DESC").Order("seq DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list staff: %w", err)
	}

	result := make([]domain.StaffMember, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, int(total), nil
}

func (r *sqliteStaffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	var row staffRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, mapGormError(err)
	}
	staff := row.toDomain()
	return &staff, nil
}

func (r *sqliteStaffRepository) Update(ctx context.Context, id string, patch domain.StaffPatch, updatedAt time.Time) (*domain.StaffMember, error) {
	var updated domain.StaffMember
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row staffRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return mapGormError(err)
		}
		staff := row.toDomain()
		staff.Apply(patch, updatedAt)

		changes := map[string]any{"updated_at": staff.UpdatedAt}
		if patch.FirstName != nil {
			changes["first_name"] = staff.FirstName
		}
		if patch.LastName != nil {
			changes["last_name"] = staff.LastName
		}
		if patch.Email != nil {
			changes["email"] = staff.Email
		}
		if patch.Position != nil {
			changes["position"] = staff.Position
		}
		if patch.Department != nil {
			changes["department"] = staff.Department
		}
		if patch.Status != nil {
			changes["status"] = string(staff.Status)
		}

		if err := tx.Model(&staffRow{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return mapGormError(err)
		}
		updated = staff
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *sqliteStaffRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&staffRow{})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteStaffRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *sqliteStaffRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func mapGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	default:
		return err
	}
}
