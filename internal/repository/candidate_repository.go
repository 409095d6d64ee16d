package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
	"github.com/Freeeeeet/interview_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CandidateRepository struct {
	*base.Repository
}

func NewCandidateRepository(pool *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового кандидата
func (r *CandidateRepository) Create(ctx context.Context, candidate *model.Candidate) error {
	query := `
		INSERT INTO candidates (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, candidate.FirstName, candidate.LastName).Scan(&candidate.ID)
	if err != nil {
		return fmt.Errorf("create candidate: %w", err)
	}

	return nil
}

// GetByID получает кандидата по ID, nil если не найден
func (r *CandidateRepository) GetByID(ctx context.Context, id int64) (*model.Candidate, error) {
	query := `
		SELECT id, first_name, last_name
		FROM candidates
		WHERE id = $1
	`

	var candidate model.Candidate
	err := r.QueryRow(ctx, query, id).Scan(
		&candidate.ID,
		&candidate.FirstName,
		&candidate.LastName,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get candidate by id: %w", err)
	}

	return &candidate, nil
}

// List получает всех кандидатов
func (r *CandidateRepository) List(ctx context.Context) ([]*model.Candidate, error) {
	query := `
		SELECT id, first_name, last_name
		FROM candidates
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []*model.Candidate{}
	for rows.Next() {
		var candidate model.Candidate
		if err := rows.Scan(&candidate.ID, &candidate.FirstName, &candidate.LastName); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, &candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}

	return candidates, nil
}

// Update обновляет данные кандидата, false если кандидата нет
func (r *CandidateRepository) Update(ctx context.Context, candidate *model.Candidate) (bool, error) {
	query := `
		UPDATE candidates
		SET first_name = $1, last_name = $2
		WHERE id = $3
	`

	affected, err := r.ExecAffected(ctx, query, candidate.FirstName, candidate.LastName, candidate.ID)
	if err != nil {
		return false, fmt.Errorf("update candidate: %w", err)
	}

	return affected > 0, nil
}

// Delete удаляет кандидата (слоты удалятся каскадом)
func (r *CandidateRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete candidate: %w", err)
	}

	return affected > 0, nil
}
