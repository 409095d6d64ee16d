package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
)

type SlotRepository struct {
	store *Store
}

// Insert ведёт себя как INSERT ... ON CONFLICT DO NOTHING
func (r *SlotRepository) Insert(_ context.Context, slot *model.Slot) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot.CandidateID != nil {
		if _, ok := s.candidates[*slot.CandidateID]; !ok {
			return false, fmt.Errorf("insert slot: candidate %d: %w", *slot.CandidateID, model.ErrSlotOwnerMissing)
		}
	}
	if slot.EmployeeID != nil {
		if _, ok := s.employees[*slot.EmployeeID]; !ok {
			return false, fmt.Errorf("insert slot: employee %d: %w", *slot.EmployeeID, model.ErrSlotOwnerMissing)
		}
	}

	key := keyOf(*slot)
	if _, exists := s.slotKeys[key]; exists {
		return false, nil
	}

	s.nextSlotID++
	stored := model.Slot{
		ID:          s.nextSlotID,
		CandidateID: copyID(slot.CandidateID),
		EmployeeID:  copyID(slot.EmployeeID),
		Code:        slot.Code,
	}
	s.slots[stored.ID] = stored
	s.slotKeys[key] = stored.ID
	slot.ID = stored.ID
	return true, nil
}

func (r *SlotRepository) GetByID(_ context.Context, id int64) (*model.Slot, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (r *SlotRepository) List(_ context.Context) ([]*model.Slot, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots := make([]*model.Slot, 0, len(s.slots))
	for _, id := range sortedIDs(s.slots) {
		slot := s.slots[id]
		slots = append(slots, &slot)
	}
	return slots, nil
}

// Codes фильтрует как IS NOT DISTINCT FROM: nil совпадает только с nil
func (r *SlotRepository) Codes(_ context.Context, candidateID, employeeID *int64) ([]string, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var codes []string
	for _, slot := range s.slots {
		if sameRef(slot.CandidateID, candidateID) && sameRef(slot.EmployeeID, employeeID) {
			codes = append(codes, slot.Code)
		}
	}
	sort.Strings(codes)
	return codes, nil
}

func (r *SlotRepository) Delete(_ context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[id]
	if !ok {
		return false, nil
	}
	delete(s.slotKeys, keyOf(slot))
	delete(s.slots, id)
	return true, nil
}

func (r *SlotRepository) DeleteBefore(_ context.Context, code string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteSlotsLocked(func(slot model.Slot) bool {
		return slot.Code < code
	}), nil
}

func sameRef(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
