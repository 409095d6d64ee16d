package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
	"go.uber.org/zap"
)

// CreateCandidateRequest данные для создания кандидата
type CreateCandidateRequest struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
}

// UpdateCandidateRequest частичное обновление, nil поля не меняются
type UpdateCandidateRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=50"`
}

type CandidateService struct {
	candidateRepo CandidateStore
	cache         AvailabilityCache
	logger        *zap.Logger
}

func NewCandidateService(candidateRepo CandidateStore, logger *zap.Logger) *CandidateService {
	return &CandidateService{
		candidateRepo: candidateRepo,
		cache:         noopCache{},
		logger:        logger,
	}
}

// SetCache подключает кэш пересечений, который сбрасывается при удалении
func (s *CandidateService) SetCache(cache AvailabilityCache) {
	if cache == nil {
		cache = noopCache{}
	}
	s.cache = cache
}

func (s *CandidateService) List(ctx context.Context) ([]*model.Candidate, error) {
	return s.candidateRepo.List(ctx)
}

func (s *CandidateService) Get(ctx context.Context, id int64) (*model.Candidate, error) {
	candidate, err := s.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if candidate == nil {
		return nil, fmt.Errorf("%w: candidate %d", ErrNotFound, id)
	}
	return candidate, nil
}

// Create создаёт кандидата
func (s *CandidateService) Create(ctx context.Context, req CreateCandidateRequest) (*model.Candidate, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	candidate := &model.Candidate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}

	s.logger.Info("Candidate created", zap.Int64("candidate_id", candidate.ID))
	return candidate, nil
}

// Update применяет частичное обновление
func (s *CandidateService) Update(ctx context.Context, id int64, req UpdateCandidateRequest) (*model.Candidate, error) {
	candidate, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		candidate.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		candidate.LastName = *req.LastName
	}

	updated, err := s.candidateRepo.Update(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("update candidate: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: candidate %d", ErrNotFound, id)
	}

	s.logger.Info("Candidate updated", zap.Int64("candidate_id", id))
	return candidate, nil
}

// Delete удаляет кандидата вместе с его слотами
func (s *CandidateService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.candidateRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: candidate %d", ErrNotFound, id)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Availability cache invalidation failed", zap.Error(err))
	}

	s.logger.Info("Candidate deleted", zap.Int64("candidate_id", id))
	return nil
}
