package service

import (
	"context"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
)

// CandidateStore хранилище кандидатов. GetByID возвращает nil, nil если записи нет.
type CandidateStore interface {
	Create(ctx context.Context, candidate *model.Candidate) error
	GetByID(ctx context.Context, id int64) (*model.Candidate, error)
	List(ctx context.Context) ([]*model.Candidate, error)
	Update(ctx context.Context, candidate *model.Candidate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// EmployeeStore хранилище сотрудников
type EmployeeStore interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	List(ctx context.Context) ([]*model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// SlotStore хранилище слотов. Insert идемпотентен по (candidate, employee, code).
type SlotStore interface {
	Insert(ctx context.Context, slot *model.Slot) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.Slot, error)
	List(ctx context.Context) ([]*model.Slot, error)
	Codes(ctx context.Context, candidateID, employeeID *int64) ([]string, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteBefore(ctx context.Context, code string) (int64, error)
}
