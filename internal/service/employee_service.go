package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
	"go.uber.org/zap"
)

type CreateEmployeeRequest struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Position  string `json:"position" validate:"required,max=50"`
}

type UpdateEmployeeRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=50"`
	Position  *string `json:"position" validate:"omitempty,min=1,max=50"`
}

type EmployeeService struct {
	employeeRepo EmployeeStore
	cache        AvailabilityCache
	logger       *zap.Logger
}

func NewEmployeeService(employeeRepo EmployeeStore, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		cache:        noopCache{},
		logger:       logger,
	}
}

func (s *EmployeeService) SetCache(cache AvailabilityCache) {
	if cache == nil {
		cache = noopCache{}
	}
	s.cache = cache
}

func (s *EmployeeService) List(ctx context.Context) ([]*model.Employee, error) {
	return s.employeeRepo.List(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*model.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: employee %d", ErrNotFound, id)
	}
	return employee, nil
}

func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*model.Employee, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	employee := &model.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  req.Position,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.logger.Info("Employee created",
		zap.Int64("employee_id", employee.ID),
		zap.String("position", employee.Position),
	)
	return employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*model.Employee, error) {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}

	updated, err := s.employeeRepo.Update(ctx, employee)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: employee %d", ErrNotFound, id)
	}

	s.logger.Info("Employee updated", zap.Int64("employee_id", id))
	return employee, nil
}

// Delete удаляет сотрудника, слоты удаляются каскадом
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.employeeRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: employee %d", ErrNotFound, id)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Availability cache invalidation failed", zap.Error(err))
	}

	s.logger.Info("Employee deleted", zap.Int64("employee_id", id))
	return nil
}
