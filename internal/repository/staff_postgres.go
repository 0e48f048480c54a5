package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nwoyi/staffing-api/internal/domain"
)

const pgUniqueViolation = "23505"

const staffColumns = `id, first_name, last_name, email, position, department, status, hire_date, created_at, updated_at`

type postgresStaffRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresStaffRepository instantiates the pgx-backed repository.
func NewPostgresStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &postgresStaffRepository{pool: pool}
}

func (r *postgresStaffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff (` + staffColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	_, err := r.pool.Exec(ctx, query,
		staff.ID,
		staff.FirstName,
		staff.LastName,
		staff.Email,
		staff.Position,
		staff.Department,
		string(staff.Status),
		staff.HireDate.Time(),
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	return mapPgError(err)
}

func (r *postgresStaffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, int, error) {
	filter, err := filter.normalized()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count staff: %w", err)
	}

	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	result := make([]domain.StaffMember, 0, filter.Limit)
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *staff)
	}
	return result, total, rows.Err()
}

func (r *postgresStaffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id=$1`
	staff, err := scanStaff(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return staff, nil
}

func (r *postgresStaffRepository) Update(ctx context.Context, id string, patch domain.StaffPatch, updatedAt time.Time) (*domain.StaffMember, error) {
	args := []any{}
	sets := []string{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.FirstName != nil {
		add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Position != nil {
		add("position", *patch.Position)
	}
	if patch.Department != nil {
		add("department", *patch.Department)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}

	args = append(args, updatedAt)
	sets = append(sets, fmt.Sprintf(
		"updated_at=GREATEST($%d::timestamptz, updated_at + interval '1 microsecond')", len(args)))
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE staff SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), staffColumns)

	staff, err := scanStaff(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err)
	}
	return staff, nil
}

func (r *postgresStaffRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresStaffRepository) Close() error {
	r.pool.Close()
	return nil
}

func (r *postgresStaffRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanStaff(row pgx.Row) (*domain.StaffMember, error) {
	var (
		staff    domain.StaffMember
		status   string
		hireDate time.Time
	)
	if err := row.Scan(
		&staff.ID,
		&staff.FirstName,
		&staff.LastName,
		&staff.Email,
		&staff.Position,
		&staff.Department,
		&status,
		&hireDate,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	staff.Status = domain.StaffStatus(status)
	staff.HireDate = domain.DateOf(hireDate)
	staff.CreatedAt = staff.CreatedAt.UTC()
	staff.UpdatedAt = staff.UpdatedAt.UTC()
	return &staff, nil
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "staff_email_key" {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, pgErr.Detail)
		}
		return fmt.Errorf("postgres %s: %s", pgErr.Code, pgErr.Message)
	}
	return err
}
