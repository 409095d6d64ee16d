package service

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
	"github.com/Freeeeeet/interview_scheduler/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// среда; окно бронирования 19.10.2026 - 23.10.2026
var fixedNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.Local)

const (
	nextMonday  = "20261019"
	nextTuesday = "20261020"
)

type fixture struct {
	ctx        context.Context
	store      *memory.Store
	slots      *SlotService
	candidates *CandidateService
	employees  *EmployeeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	logger := zap.NewNop()

	slots := NewSlotService(store.Candidates(), store.Employees(), store.Slots(), logger)
	slots.SetClock(func() time.Time { return fixedNow })

	return &fixture{
		ctx:        context.Background(),
		store:      store,
		slots:      slots,
		candidates: NewCandidateService(store.Candidates(), logger),
		employees:  NewEmployeeService(store.Employees(), logger),
	}
}

func (f *fixture) candidate(t *testing.T) string {
	t.Helper()
	c, err := f.candidates.Create(f.ctx, CreateCandidateRequest{FirstName: "John", LastName: "Smith"})
	require.NoError(t, err)
	return strconv.FormatInt(c.ID, 10)
}

func (f *fixture) employee(t *testing.T) string {
	t.Helper()
	e, err := f.employees.Create(f.ctx, CreateEmployeeRequest{FirstName: "Jane", LastName: "Doe", Position: "manager"})
	require.NoError(t, err)
	return strconv.FormatInt(e.ID, 10)
}

func (f *fixture) slotCount(t *testing.T) int {
	t.Helper()
	all, err := f.slots.ListSlots(f.ctx)
	require.NoError(t, err)
	return len(all)
}

func book(day, start, end string) CreateSlotsRequest {
	return CreateSlotsRequest{DayID: day, StartTime: start, EndTime: end}
}

func TestCreateSlotsExpansion(t *testing.T) {
	f := newFixture(t)
	employeeID := f.employee(t)

	created, err := f.slots.CreateSlots(f.ctx, "", employeeID, book(nextTuesday, "11:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	all, err := f.slots.ListSlots(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, nextTuesday+"11", all[0].Code)
	assert.Nil(t, all[0].CandidateID)
	require.NotNil(t, all[0].EmployeeID)
	assert.Equal(t, employeeID, strconv.FormatInt(*all[0].EmployeeID, 10))

	// повтор не создаёт дублей
	created, err = f.slots.CreateSlots(f.ctx, "", employeeID, book(nextTuesday, "11:00", "12:00"))
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, 1, f.slotCount(t))

	created, err = f.slots.CreateSlots(f.ctx, "", employeeID, book(nextTuesday, "13:00", "16:00"))
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Equal(t, 4, f.slotCount(t))

	// 09-17 перекрывает всё уже созданное: добавятся только 9, 10, 12, 16
	created, err = f.slots.CreateSlots(f.ctx, "", employeeID, book(nextTuesday, "09:00", "17:00"))
	require.NoError(t, err)
	assert.Equal(t, 4, created)
	assert.Equal(t, 8, f.slotCount(t))
}

func TestCreateSlotsRoundsPartialStartHour(t *testing.T) {
	f := newFixture(t)
	candidateID := f.candidate(t)

	created, err := f.slots.CreateSlots(f.ctx, candidateID, "", book(nextMonday, "10:30", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	all, err := f.slots.ListSlots(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, nextMonday+"11", all[0].Code)
}

func TestCreateSlotsValidation(t *testing.T) {
	f := newFixture(t)
	employeeID := f.employee(t)

	tests := []struct {
		name string
		req  CreateSlotsRequest
	}{
		{"missing day", CreateSlotsRequest{StartTime: "10:00", EndTime: "12:00"}},
		{"missing start", CreateSlotsRequest{DayID: nextMonday, EndTime: "12:00"}},
		{"missing end", CreateSlotsRequest{DayID: nextMonday, StartTime: "10:00"}},
		{"past day", book("20121212", "10:00", "12:00")},
		{"far future", book("20301212", "10:00", "12:00")},
		{"saturday", book("20261024", "10:00", "12:00")},
		{"malformed day", book("2026-10-19", "10:00", "12:00")},
		{"start after end", book(nextTuesday, "14:00", "12:00")},
		{"rounded start equals end", book(nextTuesday, "11:15", "12:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.slots.CreateSlots(f.ctx, "", employeeID, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Zero(t, f.slotCount(t))
		})
	}
}

func TestCreateSlotsRequiresParticipant(t *testing.T) {
	f := newFixture(t)

	for _, ids := range [][2]string{{"", ""}, {"7", ""}, {"", "7"}, {"abc", "-1"}} {
		_, err := f.slots.CreateSlots(f.ctx, ids[0], ids[1], book(nextMonday, "10:00", "12:00"))
		assert.ErrorIs(t, err, ErrNotFound)
	}

	// участник проверяется раньше полей тела
	_, err := f.slots.CreateSlots(f.ctx, "", "", CreateSlotsRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, f.slots.CheckParticipants(f.ctx, "", ""), ErrNotFound)
	assert.ErrorIs(t, f.slots.CheckParticipants(f.ctx, "5", "abc"), ErrNotFound)
	assert.NoError(t, f.slots.CheckParticipants(f.ctx, "", f.employee(t)))
}

func TestCreateSlotsForBothParticipants(t *testing.T) {
	f := newFixture(t)
	candidateID := f.candidate(t)
	employeeID := f.employee(t)

	created, err := f.slots.CreateSlots(f.ctx, candidateID, employeeID, book(nextMonday, "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	all, err := f.slots.ListSlots(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.NotNil(t, all[0].CandidateID)
	assert.NotNil(t, all[0].EmployeeID)

	// такие слоты не участвуют в пересечении ни с одной стороны
	hours, err := f.slots.Availability(f.ctx, candidateID, employeeID)
	require.NoError(t, err)
	assert.Empty(t, hours)
}

func TestAvailabilityScenario(t *testing.T) {
	f := newFixture(t)
	candidateID := f.candidate(t)
	employeeA := f.employee(t)
	employeeB := f.employee(t)

	_, err := f.slots.CreateSlots(f.ctx, candidateID, "", book(nextMonday, "11:00", "15:00"))
	require.NoError(t, err)
	_, err = f.slots.CreateSlots(f.ctx, "", employeeA, book(nextMonday, "10:00", "13:00"))
	require.NoError(t, err)

	hours, err := f.slots.Availability(f.ctx, candidateID, employeeA)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-19 11:00", "2026-10-19 12:00"}, hours)

	hours, err = f.slots.Availability(f.ctx, candidateID, employeeA+","+employeeB)
	require.NoError(t, err)
	assert.Empty(t, hours)

	_, err = f.slots.CreateSlots(f.ctx, "", employeeB, book(nextMonday, "12:00", "13:00"))
	require.NoError(t, err)

	hours, err = f.slots.Availability(f.ctx, candidateID, employeeA+","+employeeB)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-19 12:00"}, hours)

	// без сотрудников возвращаются все часы кандидата
	hours, err = f.slots.Availability(f.ctx, candidateID, "")
	require.NoError(t, err)
	assert.Len(t, hours, 4)
}

func TestAvailabilityUnknownEmployee(t *testing.T) {
	f := newFixture(t)
	candidateID := f.candidate(t)
	employeeID := f.employee(t)

	for _, ids := range []string{employeeID + ",999", "999", employeeID + ",", "x"} {
		_, err := f.slots.Availability(f.ctx, candidateID, ids)
		assert.ErrorIs(t, err, ErrEmployeeNotFound, ids)
		assert.ErrorIs(t, err, ErrValidation, ids)
	}
}

func TestAvailabilityWithoutParticipants(t *testing.T) {
	f := newFixture(t)

	_, err := f.slots.Availability(f.ctx, "", "")
	assert.ErrorIs(t, err, ErrNoParticipant)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAvailabilityUnknownCandidateUsesNullFilter(t *testing.T) {
	f := newFixture(t)
	employeeID := f.employee(t)

	_, err := f.slots.CreateSlots(f.ctx, "", employeeID, book(nextMonday, "10:00", "12:00"))
	require.NoError(t, err)

	hours, err := f.slots.Availability(f.ctx, "424242", employeeID)
	require.NoError(t, err)
	assert.Empty(t, hours)
}

func TestDeleteParticipantCascadesSlots(t *testing.T) {
	f := newFixture(t)
	candidateID := f.candidate(t)
	employeeID := f.employee(t)

	_, err := f.slots.CreateSlots(f.ctx, candidateID, "", book(nextMonday, "09:00", "12:00"))
	require.NoError(t, err)
	_, err = f.slots.CreateSlots(f.ctx, "", employeeID, book(nextMonday, "09:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, 5, f.slotCount(t))

	id, _ := strconv.ParseInt(candidateID, 10, 64)
	require.NoError(t, f.candidates.Delete(f.ctx, id))
	assert.Equal(t, 2, f.slotCount(t))

	id, _ = strconv.ParseInt(employeeID, 10, 64)
	require.NoError(t, f.employees.Delete(f.ctx, id))
	assert.Zero(t, f.slotCount(t))
}

func TestGetAndDeleteSlot(t *testing.T) {
	f := newFixture(t)
	employeeID := f.employee(t)

	_, err := f.slots.CreateSlots(f.ctx, "", employeeID, book(nextMonday, "09:00", "10:00"))
	require.NoError(t, err)

	all, err := f.slots.ListSlots(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	slot, err := f.slots.GetSlot(f.ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, nextMonday+"09", slot.Code)

	require.NoError(t, f.slots.DeleteSlot(f.ctx, slot.ID))

	_, err = f.slots.GetSlot(f.ctx, slot.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.slots.DeleteSlot(f.ctx, slot.ID), ErrNotFound)
}

func TestPurgePastSlots(t *testing.T) {
	f := newFixture(t)
	employeeID := f.employee(t)

	_, err := f.slots.CreateSlots(f.ctx, "", employeeID, book(nextMonday, "09:00", "12:00"))
	require.NoError(t, err)

	f.slots.SetClock(func() time.Time { return time.Date(2026, 10, 19, 10, 20, 0, 0, time.Local) })
	removed, err := f.slots.PurgePastSlots(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.Equal(t, 2, f.slotCount(t))
}

// recordingCache кэш в памяти с версией, как у redis-реализации
type recordingCache struct {
	version     int
	entries     map[string][]string
	invalidated int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[string][]string)}
}

func (c *recordingCache) Get(_ context.Context, key string) ([]string, string, bool, error) {
	token := strconv.Itoa(c.version) + "|" + key
	hours, ok := c.entries[token]
	return hours, token, ok, nil
}

func (c *recordingCache) Set(_ context.Context, token string, hours []string) error {
	c.entries[token] = hours
	return nil
}

func (c *recordingCache) Invalidate(context.Context) error {
	c.version++
	c.invalidated++
	return nil
}

func TestAvailabilityCacheIsInvalidatedByWrites(t *testing.T) {
	f := newFixture(t)
	cache := newRecordingCache()
	f.slots.SetCache(cache)
	f.candidates.SetCache(cache)

	candidateID := f.candidate(t)
	employeeID := f.employee(t)

	_, err := f.slots.CreateSlots(f.ctx, candidateID, "", book(nextMonday, "10:00", "12:00"))
	require.NoError(t, err)
	_, err = f.slots.CreateSlots(f.ctx, "", employeeID, book(nextMonday, "11:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidated)

	hours, err := f.slots.Availability(f.ctx, candidateID, employeeID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-19 11:00"}, hours)
	assert.Len(t, cache.entries, 1)

	// идемпотентный повтор ничего не вставляет и кэш не трогает
	_, err = f.slots.CreateSlots(f.ctx, "", employeeID, book(nextMonday, "11:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidated)

	_, err = f.slots.CreateSlots(f.ctx, "", employeeID, book(nextMonday, "10:00", "11:00"))
	require.NoError(t, err)

	hours, err = f.slots.Availability(f.ctx, candidateID, employeeID+","+employeeID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-19 10:00", "2026-10-19 11:00"}, hours)

	id, _ := strconv.ParseInt(candidateID, 10, 64)
	require.NoError(t, f.candidates.Delete(f.ctx, id))
	assert.Equal(t, 4, cache.invalidated)
}

func TestAvailabilityKeyIsOrderInsensitive(t *testing.T) {
	candidate := &model.Candidate{ID: 3}
	a := []*model.Employee{{ID: 2}, {ID: 1}, {ID: 2}}
	b := []*model.Employee{{ID: 1}, {ID: 2}}

	assert.Equal(t, availabilityKey(candidate, a), availabilityKey(candidate, b))
	assert.Equal(t, "c=-;e=1,2", availabilityKey(nil, b))
	assert.NotEqual(t, availabilityKey(nil, b), availabilityKey(candidate, b))
}

// vanishingSlots имитирует удаление владельца между проверкой и вставкой
type vanishingSlots struct {
	SlotStore
}

func (vanishingSlots) Insert(context.Context, *model.Slot) (bool, error) {
	return false, fmt.Errorf("insert slot: %w", model.ErrSlotOwnerMissing)
}

func TestCreateSlotsOwnerDeletedConcurrently(t *testing.T) {
	f := newFixture(t)
	employeeID := f.employee(t)

	slots := NewSlotService(f.store.Candidates(), f.store.Employees(), vanishingSlots{f.store.Slots()}, zap.NewNop())
	slots.SetClock(func() time.Time { return fixedNow })

	created, err := slots.CreateSlots(f.ctx, "", employeeID, book(nextMonday, "10:00", "12:00"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, created)
}

func TestAvailabilityAcrossDSTGap(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jerusalem")
	if err != nil {
		t.Skipf("time zone unavailable: %v", err)
	}
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })

	f := newFixture(t)
	// четверг 19.03.2026; в пятницу 27.03 в 02:00 часы переводятся вперёд
	f.slots.SetClock(func() time.Time { return time.Date(2026, 3, 19, 12, 0, 0, 0, loc) })
	candidateID := f.candidate(t)
	employeeID := f.employee(t)

	_, err = f.slots.CreateSlots(f.ctx, candidateID, "", book("20260327", "01:00", "04:00"))
	require.NoError(t, err)
	_, err = f.slots.CreateSlots(f.ctx, "", employeeID, book("20260327", "01:00", "04:00"))
	require.NoError(t, err)

	hours, err := f.slots.Availability(f.ctx, candidateID, employeeID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-27 01:00", "2026-03-27 02:00", "2026-03-27 03:00"}, hours)
}
