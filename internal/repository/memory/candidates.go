package memory

import (
	"context"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
)

type CandidateRepository struct {
	store *Store
}

func (r *CandidateRepository) Create(_ context.Context, candidate *model.Candidate) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCandidateID++
	candidate.ID = s.nextCandidateID
	s.candidates[candidate.ID] = *candidate
	return nil
}

func (r *CandidateRepository) GetByID(_ context.Context, id int64) (*model.Candidate, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidate, ok := s.candidates[id]
	if !ok {
		return nil, nil
	}
	return &candidate, nil
}

func (r *CandidateRepository) List(_ context.Context) ([]*model.Candidate, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]*model.Candidate, 0, len(s.candidates))
	for _, id := range sortedIDs(s.candidates) {
		candidate := s.candidates[id]
		candidates = append(candidates, &candidate)
	}
	return candidates, nil
}

func (r *CandidateRepository) Update(_ context.Context, candidate *model.Candidate) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.candidates[candidate.ID]; !ok {
		return false, nil
	}
	s.candidates[candidate.ID] = *candidate
	return true, nil
}

func (r *CandidateRepository) Delete(_ context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.candidates[id]; !ok {
		return false, nil
	}
	delete(s.candidates, id)
	s.deleteSlotsLocked(func(slot model.Slot) bool {
		return slot.CandidateID != nil && *slot.CandidateID == id
	})
	return true, nil
}
