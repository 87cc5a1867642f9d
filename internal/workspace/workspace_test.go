package workspace

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/filter"
	"crm/internal/models"
	"crm/internal/record"
	"crm/internal/storage"
	"crm/internal/storage/memory"
)

var fixedNow = time.Date(2023, 6, 10, 9, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func openSeeded(t *testing.T) (*Workspace, *memory.Store) {
	t.Helper()
	backend := memory.New()
	w := Open(context.Background(), backend, Options{
		Seed:  true,
		Now:   func() time.Time { return fixedNow },
		NewID: sequentialIDs(),
	})
	return w, backend
}

func TestOpenSeedsEmptyBackend(t *testing.T) {
	w, backend := openSeeded(t)

	assert.Len(t, w.Customers(filter.CustomerSpec{}), 6)
	assert.Equal(t, 7, w.Board().Len())
	assert.Len(t, w.Tasks(filter.TabAll), 6)
	assert.Equal(t, 3, backend.Writes())
	assert.Empty(t, w.Dirty())
}

func TestOpenWithoutSeedStartsEmpty(t *testing.T) {
	w := Open(context.Background(), memory.New(), Options{})
	assert.Empty(t, w.Customers(filter.CustomerSpec{}))
	assert.Equal(t, 0, w.Board().Len())
}

func TestOpenFallsBackWhenStorageUnavailable(t *testing.T) {
	backend := memory.New()
	backend.Fail(errors.New("offline"), nil)

	w := Open(context.Background(), backend, Options{Seed: true})
	assert.Empty(t, w.Customers(filter.CustomerSpec{}))
	assert.Equal(t, 0, w.Board().Len())
	assert.Empty(t, w.Tasks(filter.TabAll))
}

func TestOpenReloadsPersistedState(t *testing.T) {
	w, backend := openSeeded(t)
	ctx := context.Background()

	_, persisted, err := w.AddCustomer(ctx, models.Customer{Name: "Lisa Chen", Company: "InnoTech"})
	require.NoError(t, err)
	require.True(t, persisted)
	persisted, err = w.MoveDeal(ctx, "7", models.StageClosed, 0)
	require.NoError(t, err)
	require.True(t, persisted)

	reopened := Open(ctx, backend, Options{Seed: true})
	assert.Len(t, reopened.Customers(filter.CustomerSpec{}), 7)
	stage, ok := reopened.Board().StageOf("7")
	require.True(t, ok)
	assert.Equal(t, models.StageClosed, stage)
	assert.Equal(t, []string{"7", "4"}, reopened.Board().Sequence(models.StageClosed))
}

func TestAddCustomerMintsIdentityAndDefaults(t *testing.T) {
	w, _ := openSeeded(t)

	c, persisted, err := w.AddCustomer(context.Background(), models.Customer{ID: "1", Name: "  Lisa Chen "})
	require.NoError(t, err)
	assert.True(t, persisted)
	assert.Equal(t, "new-1", c.ID)
	assert.Equal(t, "Lisa Chen", c.Name)
	assert.Equal(t, models.StatusLead, c.Status)

	got, ok := w.Customer("new-1")
	require.True(t, ok)
	assert.Equal(t, c, got)

	_, _, err = w.AddCustomer(context.Background(), models.Customer{Name: "Bad", Subscription: "Gold"})
	assert.ErrorIs(t, err, record.ErrInvalidRecord)
}

func TestAddCustomerDuplicateIdentity(t *testing.T) {
	backend := memory.New()
	w := Open(context.Background(), backend, Options{Seed: true, NewID: func() string { return "1" }})

	_, _, err := w.AddCustomer(context.Background(), models.Customer{Name: "Clash"})
	assert.ErrorIs(t, err, record.ErrDuplicateIdentity)
	assert.Len(t, w.Customers(filter.CustomerSpec{}), 6)
}

func TestCustomerStatusAndDelete(t *testing.T) {
	w, _ := openSeeded(t)
	ctx := context.Background()

	c, _, err := w.SetCustomerStatus(ctx, "2", models.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, c.Status)

	active := w.Customers(filter.CustomerSpec{Statuses: []models.CustomerStatus{models.StatusActive}})
	assert.Len(t, active, 4)

	_, _, err = w.SetCustomerStatus(ctx, "2", "vip")
	assert.ErrorIs(t, err, record.ErrInvalidRecord)
	_, _, err = w.SetCustomerStatus(ctx, "404", models.StatusActive)
	assert.ErrorIs(t, err, record.ErrUnknownIdentity)

	_, err = w.DeleteCustomer(ctx, "2")
	require.NoError(t, err)
	_, ok := w.Customer("2")
	assert.False(t, ok)
	_, err = w.DeleteCustomer(ctx, "2")
	assert.ErrorIs(t, err, record.ErrUnknownIdentity)
}

func TestPipelineOperations(t *testing.T) {
	w, _ := openSeeded(t)
	ctx := context.Background()

	d, _, err := w.AddDeal(ctx, models.Deal{Title: "Support Plan", Company: "Acme Corp", Value: 1500, Probability: 30})
	require.NoError(t, err)
	assert.Equal(t, models.StageContacted, d.Stage)
	assert.Equal(t, []string{"3", "7", d.ID}, w.Board().Sequence(models.StageContacted))

	_, err = w.ReorderDeals(ctx, models.StageContacted, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{d.ID, "3", "7"}, w.Board().Sequence(models.StageContacted))

	_, err = w.ReorderDeals(ctx, models.StageNegotiation, 0, 5)
	assert.ErrorIs(t, err, record.ErrIndexOutOfRange)

	_, err = w.MoveDeal(ctx, "ghost", models.StageClosed, 0)
	assert.ErrorIs(t, err, record.ErrUnknownIdentity)

	_, err = w.DeleteDeal(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, w.Board().Len())

	_, _, err = w.AddDeal(ctx, models.Deal{Title: "Bad date", DueDate: "next week"})
	assert.ErrorIs(t, err, record.ErrInvalidRecord)
}

func TestPipelineFilterKeepsStageTotals(t *testing.T) {
	w, _ := openSeeded(t)

	cols := w.Pipeline(filter.DealSpec{Query: "cloud"})
	for _, col := range cols {
		if col.Stage == models.StageNegotiation {
			assert.Equal(t, 1, col.Count)
			assert.Equal(t, int64(55000), col.Total)
			continue
		}
		assert.Equal(t, 0, col.Count)
	}
}

func TestTasks(t *testing.T) {
	w, _ := openSeeded(t)
	ctx := context.Background()

	assert.Len(t, w.Tasks(filter.TabToday), 1)
	assert.Len(t, w.Tasks(filter.TabOverdue), 2)
	assert.Len(t, w.Tasks(filter.TabCompleted), 1)

	task, _, err := w.ToggleTask(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskDone, task.Status)
	task, _, err = w.ToggleTask(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskTodo, task.Status)

	added, _, err := w.AddTask(ctx, models.Task{Title: "Send invoice", DueDate: "2023-06-11"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, added.Priority)
	assert.Len(t, w.Tasks(filter.TabUpcoming), 4)

	_, err = w.DeleteTask(ctx, added.ID)
	require.NoError(t, err)
	_, _, err = w.ToggleTask(ctx, added.ID)
	assert.ErrorIs(t, err, record.ErrUnknownIdentity)

	_, _, err = w.AddTask(ctx, models.Task{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, record.ErrInvalidRecord)
}

func TestSummary(t *testing.T) {
	w, _ := openSeeded(t)
	s := w.Summary()

	assert.Equal(t, 6, s.Customers)
	assert.Equal(t, 3, s.CustomersByStatus[models.StatusActive])
	assert.Equal(t, 6, s.OpenDeals)
	assert.Equal(t, int64(125500), s.PipelineValue)
	assert.Equal(t, int64(20000), s.ClosedValue)
	assert.Equal(t, 5, s.OpenTasks)
	assert.Equal(t, 1, s.OverdueTasks)
	assert.Empty(t, s.DirtySlots)
}

func TestSaveFailureKeepsMutationAndFlushRecovers(t *testing.T) {
	w, backend := openSeeded(t)
	ctx := context.Background()

	backend.Fail(nil, errors.New("disk full"))
	persisted, err := w.MoveDeal(ctx, "3", models.StageProposal, 0)
	require.NoError(t, err)
	assert.False(t, persisted)

	stage, _ := w.Board().StageOf("3")
	assert.Equal(t, models.StageProposal, stage, "in-memory move must stand")
	assert.Equal(t, []string{storage.SlotDeals}, w.Dirty())

	err = w.Flush(ctx)
	assert.ErrorIs(t, err, record.ErrStorageWriteFailed)

	backend.Fail(nil, nil)
	require.NoError(t, w.Flush(ctx))
	assert.Empty(t, w.Dirty())

	reopened := Open(ctx, backend, Options{})
	stage, _ = reopened.Board().StageOf("3")
	assert.Equal(t, models.StageProposal, stage)
}

func TestNoopBoardMutationSkipsSave(t *testing.T) {
	w, backend := openSeeded(t)
	before := backend.Writes()

	persisted, err := w.ReorderDeals(context.Background(), models.StageProposal, 1, 1)
	require.NoError(t, err)
	assert.True(t, persisted)
	assert.Equal(t, before, backend.Writes())
}

func TestFlusherRetriesDirtySlots(t *testing.T) {
	w, backend := openSeeded(t)
	ctx, cancel := context.WithCancel(context.Background())

	backend.Fail(nil, errors.New("offline"))
	_, _, err := w.ToggleTask(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, []string{storage.SlotTasks}, w.Dirty())
	backend.Fail(nil, nil)

	done := w.StartFlusher(ctx, rapid{})

	require.Eventually(t, func() bool { return len(w.Dirty()) == 0 }, 5*time.Second, 20*time.Millisecond)
	cancel()
	<-done
}

// rapid fires more often than a 5-field cron expression can.
type rapid struct{}

func (rapid) Next(t time.Time) time.Time { return t.Add(100 * time.Millisecond) }
