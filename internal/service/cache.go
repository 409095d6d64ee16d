package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
)

// AvailabilityCache кэш результатов пересечения.
// Get возвращает token, привязанный к версии данных на момент чтения; Set пишет только под этот token,
// поэтому результат, посчитанный до инвалидации, не попадёт в новую версию.
type AvailabilityCache interface {
	Get(ctx context.Context, key string) (hours []string, token string, found bool, err error)
	Set(ctx context.Context, token string, hours []string) error
	Invalidate(ctx context.Context) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]string, string, bool, error) {
	return nil, "", false, nil
}

func (noopCache) Set(context.Context, string, []string) error { return nil }

func (noopCache) Invalidate(context.Context) error { return nil }

// availabilityKey нормализует запрос: порядок и повторы сотрудников не влияют на результат
func availabilityKey(candidate *model.Candidate, employees []*model.Employee) string {
	candidatePart := "-"
	if candidate != nil {
		candidatePart = strconv.FormatInt(candidate.ID, 10)
	}

	seen := make(map[int64]struct{}, len(employees))
	ids := make([]int64, 0, len(employees))
	for _, employee := range employees {
		if _, ok := seen[employee.ID]; ok {
			continue
		}
		seen[employee.ID] = struct{}{}
		ids = append(ids, employee.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	return "c=" + candidatePart + ";e=" + strings.Join(parts, ",")
}
