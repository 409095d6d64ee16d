package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
	"github.com/Freeeeeet/interview_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

// Insert создаёт слот, если такого (кандидат, сотрудник, код) ещё нет.
// Возвращает false, если слот уже существовал.
func (r *SlotRepository) Insert(ctx context.Context, slot *model.Slot) (bool, error) {
	// уникальный индекс slots_owner_code_key закрывает гонку check-then-insert
	query := `
		INSERT INTO slots (candidate_id, employee_id, code)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
		RETURNING id
	`

	err := r.QueryRow(ctx, query, slot.CandidateID, slot.EmployeeID, slot.Code).Scan(&slot.ID)
	if err != nil {
		if base.IsNotFound(err) {
			return false, nil
		}
		if base.IsForeignKeyViolation(err) {
			return false, fmt.Errorf("insert slot %s: %w", slot.Code, model.ErrSlotOwnerMissing)
		}
		return false, fmt.Errorf("insert slot: %w", err)
	}

	return true, nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	query := `
		SELECT id, candidate_id, employee_id, code
		FROM slots
		WHERE id = $1
	`

	var slot model.Slot
	err := r.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.CandidateID,
		&slot.EmployeeID,
		&slot.Code,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return &slot, nil
}

// List получает все слоты
func (r *SlotRepository) List(ctx context.Context) ([]*model.Slot, error) {
	query := `
		SELECT id, candidate_id, employee_id, code
		FROM slots
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	slots := []*model.Slot{}
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.CandidateID,
			&slot.EmployeeID,
			&slot.Code,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}

	return slots, nil
}

// Codes возвращает коды слотов владельца. nil в фильтре означает IS NULL.
func (r *SlotRepository) Codes(ctx context.Context, candidateID, employeeID *int64) ([]string, error) {
	query := `
		SELECT code
		FROM slots
		WHERE candidate_id IS NOT DISTINCT FROM $1
		  AND employee_id IS NOT DISTINCT FROM $2
		ORDER BY code
	`

	rows, err := r.Query(ctx, query, candidateID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("get slot codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan slot code: %w", err)
		}
		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slot codes: %w", err)
	}

	return codes, nil
}

// Delete удаляет слот по ID
func (r *SlotRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}

	return affected > 0, nil
}

// DeleteBefore удаляет слоты с кодом меньше указанного (коды упорядочены как время)
func (r *SlotRepository) DeleteBefore(ctx context.Context, code string) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM slots WHERE code < $1`, code)
	if err != nil {
		return 0, fmt.Errorf("delete past slots: %w", err)
	}

	return affected, nil
}
