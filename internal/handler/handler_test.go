package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pondkeeper/pondkeeper/internal/calendar"
	"github.com/pondkeeper/pondkeeper/internal/catalog"
	"github.com/pondkeeper/pondkeeper/internal/clock"
	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/economy"
	"github.com/pondkeeper/pondkeeper/internal/hunger"
	"github.com/pondkeeper/pondkeeper/internal/progression"
	"github.com/pondkeeper/pondkeeper/internal/reminder"
	"github.com/pondkeeper/pondkeeper/internal/repository"
	"github.com/pondkeeper/pondkeeper/internal/user"
)

// testEnv wires real services over the fake repository so handler tests
// exercise the full request path without a database.
type testEnv struct {
	repo        *repository.FakeAccountRepository
	catalog     *catalog.Catalog
	userSvc     user.Service
	hungerSvc   hunger.Service
	economySvc  economy.Service
	progression progression.Service
	calendarSvc calendar.Service
	reminderSvc reminder.Service
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]domain.Item{
		{ID: "hat_leaf", Slot: domain.SlotHat, Rarity: domain.RarityCommon, Price: 10},
		{ID: "glasses_round", Slot: domain.SlotGlasses, Rarity: domain.RarityUncommon, Price: 25},
		{ID: "scarf_silk", Slot: domain.SlotScarf, Rarity: domain.RarityRare, Price: 60},
		{ID: "gift_box", Rarity: domain.RarityRare, Price: 100, Gift: true},
	}, nil)
	require.NoError(t, err)
	return cat
}

type stubTaskSource struct {
	tasks []domain.TaskItem
}

func (s *stubTaskSource) DueTasks(_ context.Context, _ string, _ string) ([]domain.TaskItem, error) {
	return s.tasks, nil
}

type noopPushSender struct{}

func (noopPushSender) Send(context.Context, string, reminder.Notification) error { return nil }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	InitValidator()

	repo := repository.NewFakeAccountRepository()
	cat := testCatalog(t)
	resolver := clock.NewResolver()
	hungerSvc := hunger.NewService(repo)
	tasks := &stubTaskSource{tasks: []domain.TaskItem{
		{ID: "task-1", Title: "Water the plants"},
		{ID: "task-2", Title: "Stretch"},
	}}

	return &testEnv{
		repo:        repo,
		catalog:     cat,
		userSvc:     user.NewService(repo, hungerSvc),
		hungerSvc:   hungerSvc,
		economySvc:  economy.NewService(repo, cat),
		progression: progression.NewService(repo, cat, tasks, resolver, "gift_box"),
		calendarSvc: calendar.NewService(repo, resolver),
		reminderSvc: reminder.NewService(repo, tasks, noopPushSender{}, resolver),
	}
}

func (e *testEnv) seedAccount(t *testing.T, balance int) *domain.Account {
	t.Helper()
	acc := domain.NewAccount("acc-1", "kermit", time.Now().UTC())
	acc.Balance = balance
	e.repo.Seed(acc)
	return acc
}
