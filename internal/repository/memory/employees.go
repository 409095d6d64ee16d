package memory

import (
	"context"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
)

type EmployeeRepository struct {
	store *Store
}

func (r *EmployeeRepository) Create(_ context.Context, employee *model.Employee) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEmployeeID++
	employee.ID = s.nextEmployeeID
	s.employees[employee.ID] = *employee
	return nil
}

func (r *EmployeeRepository) GetByID(_ context.Context, id int64) (*model.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	return &employee, nil
}

func (r *EmployeeRepository) List(_ context.Context) ([]*model.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]*model.Employee, 0, len(s.employees))
	for _, id := range sortedIDs(s.employees) {
		employee := s.employees[id]
		employees = append(employees, &employee)
	}
	return employees, nil
}

func (r *EmployeeRepository) Update(_ context.Context, employee *model.Employee) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employee.ID]; !ok {
		return false, nil
	}
	s.employees[employee.ID] = *employee
	return true, nil
}

func (r *EmployeeRepository) Delete(_ context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return false, nil
	}
	delete(s.employees, id)
	s.deleteSlotsLocked(func(slot model.Slot) bool {
		return slot.EmployeeID != nil && *slot.EmployeeID == id
	})
	return true, nil
}
