package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
	"github.com/Freeeeeet/interview_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EmployeeRepository struct {
	*base.Repository
}

func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового сотрудника
func (r *EmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	query := `
		INSERT INTO employees (first_name, last_name, position)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.QueryRow(
		ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Position,
	).Scan(&employee.ID)

	if err != nil {
		return fmt.Errorf("create employee: %w", err)
	}

	return nil
}

// GetByID получает сотрудника по ID, nil если не найден
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	query := `
		SELECT id, first_name, last_name, position
		FROM employees
		WHERE id = $1
	`

	var employee model.Employee
	err := r.QueryRow(ctx, query, id).Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Position,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by id: %w", err)
	}

	return &employee, nil
}

// List получает всех сотрудников
func (r *EmployeeRepository) List(ctx context.Context) ([]*model.Employee, error) {
	query := `
		SELECT id, first_name, last_name, position
		FROM employees
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := []*model.Employee{}
	for rows.Next() {
		var employee model.Employee
		err := rows.Scan(
			&employee.ID,
			&employee.FirstName,
			&employee.LastName,
			&employee.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, &employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	return employees, nil
}

// Update обновляет данные сотрудника, false если сотрудника нет
func (r *EmployeeRepository) Update(ctx context.Context, employee *model.Employee) (bool, error) {
	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, position = $3
		WHERE id = $4
	`

	affected, err := r.ExecAffected(
		ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Position,
		employee.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update employee: %w", err)
	}

	return affected > 0, nil
}

// Delete удаляет сотрудника (слоты удалятся каскадом)
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete employee: %w", err)
	}

	return affected > 0, nil
}
