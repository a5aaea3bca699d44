package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/domain"
)

const selectEmployees = `
		SELECT
			e.id,
			e.employee_id,
			e.first_name,
			e.last_name,
			e.email,
			e.birthday,
			h.id,
			h.hobby_name
		FROM employees e
		LEFT JOIN hobbies h ON e.id = h.employee_id
`

func (r *Repository) FindByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Employee, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := selectEmployees + `
		WHERE e.employee_id = $1
		ORDER BY h.id
	`

	employees, err := r.queryEmployees(ctx, query, publicID)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, domain.ErrEmployeeNotFound
	}

	return employees[0], nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := selectEmployees + `
		WHERE e.email = $1
		ORDER BY h.id
	`

	employees, err := r.queryEmployees(ctx, query, email)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, domain.ErrEmployeeNotFound
	}

	return employees[0], nil
}

func (r *Repository) FindAll(ctx context.Context) ([]*domain.Employee, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := selectEmployees + `
		ORDER BY e.id, h.id
	`

	return r.queryEmployees(ctx, query)
}

// Save 在 ID 为 0 时插入新员工，否则按内部 ID 整体替换，原有的爱好会被全部删除后重新插入
func (r *Repository) Save(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := r.transactionContext(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if employee.ID == 0 {
		query := `
			INSERT INTO employees (employee_id, first_name, last_name, email, birthday)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		args := []any{employee.PublicID, employee.FirstName, employee.LastName, employee.Email, employee.Birthday.Time}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&employee.ID); err != nil {
			return nil, translateError(err)
		}
	} else {
		query := `
			UPDATE employees
			SET
				employee_id = $1,
				first_name = $2,
				last_name = $3,
				email = $4,
				birthday = $5
			WHERE id = $6
		`
		args := []any{employee.PublicID, employee.FirstName, employee.LastName, employee.Email, employee.Birthday.Time, employee.ID}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, translateError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, domain.ErrEmployeeNotFound
		}

		// 旧的爱好不能留下孤儿记录
		if _, err := tx.ExecContext(ctx, `DELETE FROM hobbies WHERE employee_id = $1`, employee.ID); err != nil {
			return nil, err
		}
	}

	for i := range employee.Hobbies {
		query := `
			INSERT INTO hobbies (employee_id, hobby_name)
			VALUES ($1, $2)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query, employee.ID, employee.Hobbies[i].Name).Scan(&employee.Hobbies[i].ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, translateError(err)
	}

	return employee, nil
}

// DeleteByPublicID 返回被删除的行数，爱好由外键级联删除
func (r *Repository) DeleteByPublicID(ctx context.Context, publicID uuid.UUID) (int64, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		DELETE FROM employees WHERE employee_id = $1
	`

	result, err := r.dbpool.ExecContext(ctx, query, publicID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) queryEmployees(ctx context.Context, query string, args ...any) ([]*domain.Employee, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employeesMap := make(map[int64]*domain.Employee)
	employees := make([]*domain.Employee, 0)

	for rows.Next() {
		var row struct {
			Employee  domain.Employee
			HobbyID   sql.NullInt64
			HobbyName sql.NullString
		}

		dst := []any{
			&row.Employee.ID,
			&row.Employee.PublicID,
			&row.Employee.FirstName,
			&row.Employee.LastName,
			&row.Employee.Email,
			&row.Employee.Birthday.Time,
			&row.HobbyID,
			&row.HobbyName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		employee, exists := employeesMap[row.Employee.ID]
		if !exists {
			// 第一次遇到这个员工，保留查询返回的顺序
			employee = &row.Employee
			employee.Hobbies = make([]domain.Hobby, 0)
			employeesMap[employee.ID] = employee
			employees = append(employees, employee)
		}

		if row.HobbyID.Valid {
			employee.Hobbies = append(employee.Hobbies, domain.Hobby{
				ID:   row.HobbyID.Int64,
				Name: row.HobbyName.String,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
