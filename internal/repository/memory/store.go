// Package memory хранит кандидатов, сотрудников и слоты в памяти процесса.
// Контракт совпадает с postgres-репозиториями: уникальный ключ слота и каскадное удаление.
package memory

import (
	"sort"
	"sync"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
)

// Store общее состояние для трёх репозиториев
type Store struct {
	mu sync.RWMutex

	candidates map[int64]model.Candidate
	employees  map[int64]model.Employee
	slots      map[int64]model.Slot
	slotKeys   map[slotKey]int64

	nextCandidateID int64
	nextEmployeeID  int64
	nextSlotID      int64
}

// slotKey NULL-безопасный ключ уникальности, 0 означает отсутствие ссылки
type slotKey struct {
	candidateID int64
	employeeID  int64
	code        string
}

func keyOf(slot model.Slot) slotKey {
	return slotKey{
		candidateID: deref(slot.CandidateID),
		employeeID:  deref(slot.EmployeeID),
		code:        slot.Code,
	}
}

func deref(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

// NewStore создаёт пустое хранилище
func NewStore() *Store {
	return &Store{
		candidates: make(map[int64]model.Candidate),
		employees:  make(map[int64]model.Employee),
		slots:      make(map[int64]model.Slot),
		slotKeys:   make(map[slotKey]int64),
	}
}

// Candidates репозиторий кандидатов поверх хранилища
func (s *Store) Candidates() *CandidateRepository {
	return &CandidateRepository{store: s}
}

// Employees репозиторий сотрудников поверх хранилища
func (s *Store) Employees() *EmployeeRepository {
	return &EmployeeRepository{store: s}
}

// Slots репозиторий слотов поверх хранилища
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// deleteSlotsLocked удаляет слоты, для которых match вернул true. Вызывать под s.mu.
func (s *Store) deleteSlotsLocked(match func(model.Slot) bool) int64 {
	var removed int64
	for id, slot := range s.slots {
		if match(slot) {
			delete(s.slotKeys, keyOf(slot))
			delete(s.slots, id)
			removed++
		}
	}
	return removed
}

func sortedIDs[T any](items map[int64]T) []int64 {
	ids := make([]int64, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
