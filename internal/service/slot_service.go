package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
	"github.com/Freeeeeet/interview_scheduler/internal/telemetry"
	"go.uber.org/zap"
)

// CreateSlotsRequest тело запроса на создание слотов
type CreateSlotsRequest struct {
	DayID     string `json:"day_id" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type SlotService struct {
	candidateRepo CandidateStore
	employeeRepo  EmployeeStore
	slotRepo      SlotStore
	cache         AvailabilityCache
	now           func() time.Time
	logger        *zap.Logger
}

func NewSlotService(
	candidateRepo CandidateStore,
	employeeRepo EmployeeStore,
	slotRepo SlotStore,
	logger *zap.Logger,
) *SlotService {
	return &SlotService{
		candidateRepo: candidateRepo,
		employeeRepo:  employeeRepo,
		slotRepo:      slotRepo,
		cache:         noopCache{},
		now:           time.Now,
		logger:        logger,
	}
}

// SetCache подключает кэш пересечений
func (s *SlotService) SetCache(cache AvailabilityCache) {
	if cache == nil {
		cache = noopCache{}
	}
	s.cache = cache
}

// SetClock подменяет источник текущего времени
func (s *SlotService) SetClock(now func() time.Time) {
	s.now = now
}

// Now текущее время по часам сервиса
func (s *SlotService) Now() time.Time {
	return s.now()
}

// ResolveCandidate возвращает кандидата по строковому id или nil, если его нет
func (s *SlotService) ResolveCandidate(ctx context.Context, rawID string) (*model.Candidate, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, nil
	}

	candidate, err := s.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return candidate, nil
}

// ResolveEmployee возвращает сотрудника по строковому id или nil, если его нет
func (s *SlotService) ResolveEmployee(ctx context.Context, rawID string) (*model.Employee, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, nil
	}

	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return employee, nil
}

// ResolveEmployees разбирает список id через запятую. Всё или ничего:
// если хоть один id не найден, возвращается ErrEmployeeNotFound.
func (s *SlotService) ResolveEmployees(ctx context.Context, rawIDs string) ([]*model.Employee, error) {
	if rawIDs == "" {
		return []*model.Employee{}, nil
	}

	items := strings.Split(rawIDs, ",")
	employees := make([]*model.Employee, 0, len(items))
	for _, item := range items {
		employee, err := s.ResolveEmployee(ctx, item)
		if err != nil {
			return nil, err
		}
		if employee == nil {
			return nil, fmt.Errorf("%w (id %q)", ErrEmployeeNotFound, strings.TrimSpace(item))
		}
		employees = append(employees, employee)
	}

	return employees, nil
}

// CreateSlots бронирует часы [start, end) дня req.DayID для кандидата и/или сотрудника.
// Уже существующие слоты пропускаются. Возвращает количество реально вставленных слотов.
func (s *SlotService) CreateSlots(ctx context.Context, candidateID, employeeID string, req CreateSlotsRequest) (int, error) {
	candidate, employee, err := s.resolveParticipants(ctx, candidateID, employeeID)
	if err != nil {
		return 0, err
	}

	if err := validateStruct(req); err != nil {
		return 0, err
	}

	inWindow, err := IsInBookingWindow(req.DayID, s.now())
	if err != nil {
		return 0, err
	}
	if !inWindow {
		return 0, fmt.Errorf("%w: day_id %s is outside the booking window", ErrValidation, req.DayID)
	}

	startHour, endHour, err := ResolveHourRange(req.StartTime, req.EndTime)
	if err != nil {
		return 0, err
	}

	var candidateRef, employeeRef *int64
	if candidate != nil {
		candidateRef = &candidate.ID
	}
	if employee != nil {
		employeeRef = &employee.ID
	}

	created := 0
	defer func() {
		if created > 0 {
			telemetry.SlotsCreated.WithLabelValues(ownerKind(candidate, employee)).Add(float64(created))
			s.invalidate(ctx)
		}
	}()

	// каждый час вставляется независимо, уже вставленные не откатываются при ошибке
	for hour := startHour; hour < endHour; hour++ {
		slot := &model.Slot{
			CandidateID: candidateRef,
			EmployeeID:  employeeRef,
			Code:        model.SlotCode(req.DayID, hour),
		}

		inserted, err := s.slotRepo.Insert(ctx, slot)
		if errors.Is(err, model.ErrSlotOwnerMissing) {
			return created, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if err != nil {
			s.logger.Error("Failed to insert slot",
				zap.String("code", slot.Code),
				zap.Error(err),
			)
			return created, fmt.Errorf("create slot %s: %w", slot.Code, err)
		}
		if inserted {
			created++
		}
	}

	s.logger.Info("Slots created",
		zap.Int64p("candidate_id", candidateRef),
		zap.Int64p("employee_id", employeeRef),
		zap.String("day_id", req.DayID),
		zap.Int("start_hour", startHour),
		zap.Int("end_hour", endHour),
		zap.Int("created", created),
		zap.Int("requested", endHour-startHour),
	)

	return created, nil
}

// CheckParticipants возвращает ErrNotFound, если не найден ни кандидат, ни сотрудник.
// Эта проверка идёт раньше любой проверки тела запроса.
func (s *SlotService) CheckParticipants(ctx context.Context, candidateID, employeeID string) error {
	_, _, err := s.resolveParticipants(ctx, candidateID, employeeID)
	return err
}

func (s *SlotService) resolveParticipants(ctx context.Context, candidateID, employeeID string) (*model.Candidate, *model.Employee, error) {
	employee, err := s.ResolveEmployee(ctx, employeeID)
	if err != nil {
		return nil, nil, err
	}
	candidate, err := s.ResolveCandidate(ctx, candidateID)
	if err != nil {
		return nil, nil, err
	}

	if employee == nil && candidate == nil {
		return nil, nil, fmt.Errorf("%w: candidate or employee", ErrNotFound)
	}
	return candidate, employee, nil
}

// Availability возвращает часы "YYYY-MM-DD HH:00", в которые свободны кандидат и все сотрудники
func (s *SlotService) Availability(ctx context.Context, candidateID, employeeIDs string) ([]string, error) {
	if strings.TrimSpace(candidateID) == "" && strings.TrimSpace(employeeIDs) == "" {
		telemetry.AvailabilityQueries.WithLabelValues("invalid").Inc()
		return nil, ErrNoParticipant
	}

	candidate, err := s.ResolveCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	employees, err := s.ResolveEmployees(ctx, employeeIDs)
	if err != nil {
		telemetry.AvailabilityQueries.WithLabelValues("invalid").Inc()
		return nil, err
	}

	key := availabilityKey(candidate, employees)
	cached, token, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Availability cache lookup failed", zap.String("key", key), zap.Error(err))
	} else if found {
		telemetry.AvailabilityQueries.WithLabelValues("cache_hit").Inc()
		return cached, nil
	}

	hours, err := s.intersect(ctx, candidate, employees)
	if err != nil {
		return nil, err
	}

	if token != "" {
		if err := s.cache.Set(ctx, token, hours); err != nil {
			s.logger.Warn("Availability cache store failed", zap.String("key", key), zap.Error(err))
		}
	}

	telemetry.AvailabilityQueries.WithLabelValues("ok").Inc()
	return hours, nil
}

// intersect пересекает слоты кандидата (без сотрудника) со слотами каждого сотрудника (без кандидата)
func (s *SlotService) intersect(ctx context.Context, candidate *model.Candidate, employees []*model.Employee) ([]string, error) {
	var candidateRef *int64
	if candidate != nil {
		candidateRef = &candidate.ID
	}

	codes, err := s.slotRepo.Codes(ctx, candidateRef, nil)
	if err != nil {
		return nil, fmt.Errorf("get candidate slots: %w", err)
	}

	available := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		available[code] = struct{}{}
	}

	for _, employee := range employees {
		if len(available) == 0 {
			break
		}

		employeeCodes, err := s.slotRepo.Codes(ctx, nil, &employee.ID)
		if err != nil {
			return nil, fmt.Errorf("get employee slots: %w", err)
		}

		employeeSet := make(map[string]struct{}, len(employeeCodes))
		for _, code := range employeeCodes {
			employeeSet[code] = struct{}{}
		}
		for code := range available {
			if _, ok := employeeSet[code]; !ok {
				delete(available, code)
			}
		}
	}

	result := make([]string, 0, len(available))
	for code := range available {
		result = append(result, code)
	}
	sort.Strings(result)

	for i, code := range result {
		hour, err := model.FormatHour(code)
		if err != nil {
			return nil, err
		}
		result[i] = hour
	}

	return result, nil
}

// GetSlot получает слот по ID
func (s *SlotService) GetSlot(ctx context.Context, id int64) (*model.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("%w: slot %d", ErrNotFound, id)
	}
	return slot, nil
}

// ListSlots получает все слоты
func (s *SlotService) ListSlots(ctx context.Context) ([]*model.Slot, error) {
	return s.slotRepo.List(ctx)
}

// DeleteSlot удаляет слот по ID
func (s *SlotService) DeleteSlot(ctx context.Context, id int64) error {
	deleted, err := s.slotRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: slot %d", ErrNotFound, id)
	}

	s.invalidate(ctx)
	s.logger.Info("Slot deleted", zap.Int64("slot_id", id))
	return nil
}

// PurgePastSlots удаляет слоты, час которых уже начался раньше текущего
func (s *SlotService) PurgePastSlots(ctx context.Context) (int64, error) {
	now := s.now()
	currentCode := model.SlotCode(now.Format(model.DayIDLayout), now.Hour())

	removed, err := s.slotRepo.DeleteBefore(ctx, currentCode)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.invalidate(ctx)
	}
	return removed, nil
}

func (s *SlotService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Availability cache invalidation failed", zap.Error(err))
	}
}

func ownerKind(candidate *model.Candidate, employee *model.Employee) string {
	switch {
	case candidate != nil && employee != nil:
		return "both"
	case candidate != nil:
		return "candidate"
	default:
		return "employee"
	}
}

// parseID разбирает положительный id, пустые и нечисловые значения считаются отсутствующими
func parseID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
