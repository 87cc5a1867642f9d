// Package workspace holds the current customer, pipeline and task snapshots
// of a session and persists them after every mutation.
//
// Mutations build a new snapshot and swap it in under the lock; readers only
// ever see complete snapshots. Persistence runs after the swap and never
// rolls it back: a failed save marks the slot dirty for the next Flush.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"crm/internal/board"
	"crm/internal/filter"
	"crm/internal/models"
	"crm/internal/record"
	"crm/internal/seed"
	"crm/internal/storage"
)

// Options configures Open.
type Options struct {
	// Seed fills empty slots with the sample data.
	Seed    bool
	Timeout time.Duration
	Logger  *slog.Logger
	Now     func() time.Time
	NewID   func() string
}

// Workspace is the authoritative in-memory state of the dashboard.
type Workspace struct {
	mu        sync.RWMutex
	customers record.Collection[models.Customer]
	board     *board.Board
	tasks     record.Collection[models.Task]

	customerSlot *storage.Slot[models.Customer]
	dealSlot     *storage.Slot[models.Deal]
	taskSlot     *storage.Slot[models.Task]

	saveMu sync.Mutex
	dirty  map[string]struct{}

	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Open loads every slot from backend. A slot that cannot be read starts
// empty; the condition is logged and the session continues.
func Open(ctx context.Context, backend storage.Backend, opts Options) *Workspace {
	w := &Workspace{
		dirty:  map[string]struct{}{},
		logger: opts.Logger,
		now:    opts.Now,
		newID:  opts.NewID,
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if w.now == nil {
		w.now = time.Now
	}
	if w.newID == nil {
		w.newID = record.NewID
	}

	customerOpts := []storage.SlotOption[models.Customer]{storage.WithTimeout[models.Customer](opts.Timeout), storage.WithLogger[models.Customer](w.logger)}
	dealOpts := []storage.SlotOption[models.Deal]{storage.WithTimeout[models.Deal](opts.Timeout), storage.WithLogger[models.Deal](w.logger)}
	taskOpts := []storage.SlotOption[models.Task]{storage.WithTimeout[models.Task](opts.Timeout), storage.WithLogger[models.Task](w.logger)}
	if opts.Seed {
		customerOpts = append(customerOpts, storage.WithSeed(seed.Customers))
		dealOpts = append(dealOpts, storage.WithSeed(seed.Deals))
		taskOpts = append(taskOpts, storage.WithSeed(seed.Tasks))
	}
	w.customerSlot = storage.NewSlot(storage.SlotCustomers, backend, customerOpts...)
	w.dealSlot = storage.NewSlot(storage.SlotDeals, backend, dealOpts...)
	w.taskSlot = storage.NewSlot(storage.SlotTasks, backend, taskOpts...)

	w.customers = loadCollection(ctx, w.customerSlot, w.logger)
	w.tasks = loadCollection(ctx, w.taskSlot, w.logger)

	w.board = board.Empty()
	deals, err := w.dealSlot.Load(ctx)
	if err != nil {
		w.logger.Warn("falling back to empty collection", slog.String("slot", w.dealSlot.Name()), slog.String("error", err.Error()))
	} else if b, err := board.New(deals); err != nil {
		w.logger.Warn("discarding inconsistent snapshot", slog.String("slot", w.dealSlot.Name()), slog.String("error", err.Error()))
	} else {
		w.board = b
	}

	return w
}

func loadCollection[T record.Record](ctx context.Context, slot *storage.Slot[T], logger *slog.Logger) record.Collection[T] {
	items, err := slot.Load(ctx)
	if err != nil {
		logger.Warn("falling back to empty collection", slog.String("slot", slot.Name()), slog.String("error", err.Error()))
		return record.Collection[T]{}
	}
	c, err := record.NewCollection(items)
	if err != nil {
		logger.Warn("discarding inconsistent snapshot", slog.String("slot", slot.Name()), slog.String("error", err.Error()))
		return record.Collection[T]{}
	}
	return c
}

// persist writes the current snapshot of slot. It reports whether the write
// succeeded; failures leave the slot dirty.
func (w *Workspace) persist(ctx context.Context, slot string) bool {
	ctx = context.WithoutCancel(ctx)

	w.saveMu.Lock()
	defer w.saveMu.Unlock()

	w.mu.RLock()
	var err error
	switch slot {
	case storage.SlotCustomers:
		items := w.customers.Items()
		w.mu.RUnlock()
		err = w.customerSlot.Save(ctx, items)
	case storage.SlotDeals:
		items := w.board.Deals()
		w.mu.RUnlock()
		err = w.dealSlot.Save(ctx, items)
	case storage.SlotTasks:
		items := w.tasks.Items()
		w.mu.RUnlock()
		err = w.taskSlot.Save(ctx, items)
	default:
		w.mu.RUnlock()
		err = fmt.Errorf("unknown slot %q", slot)
	}

	if err != nil {
		w.dirty[slot] = struct{}{}
		w.logger.Warn("snapshot not persisted", slog.String("slot", slot), slog.String("error", err.Error()))
		return false
	}
	delete(w.dirty, slot)
	return true
}

// Dirty lists slots whose latest snapshot has not been persisted.
func (w *Workspace) Dirty() []string {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()
	out := make([]string, 0, len(w.dirty))
	for slot := range w.dirty {
		out = append(out, slot)
	}
	sort.Strings(out)
	return out
}

// Flush retries every dirty slot.
func (w *Workspace) Flush(ctx context.Context) error {
	var errs []error
	for _, slot := range w.Dirty() {
		if !w.persist(ctx, slot) {
			errs = append(errs, fmt.Errorf("%w: %s", record.ErrStorageWriteFailed, slot))
		}
	}
	return errors.Join(errs...)
}

// Customers returns the registry view for spec.
func (w *Workspace) Customers(spec filter.CustomerSpec) []models.Customer {
	w.mu.RLock()
	items := w.customers.Items()
	w.mu.RUnlock()
	return filter.Customers(items, spec)
}

// Customer looks up a single customer.
func (w *Workspace) Customer(id string) (models.Customer, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.customers.Get(id)
}

// AddCustomer mints an identity for c and appends it to the registry.
func (w *Workspace) AddCustomer(ctx context.Context, c models.Customer) (models.Customer, bool, error) {
	c.ID = w.newID()
	c.Name = strings.TrimSpace(c.Name)
	c.Company = strings.TrimSpace(c.Company)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Status == "" {
		c.Status = models.StatusLead
	}
	if err := c.Validate(); err != nil {
		return models.Customer{}, false, fmt.Errorf("%w: %v", record.ErrInvalidRecord, err)
	}

	w.mu.Lock()
	next, err := w.customers.Add(c)
	if err != nil {
		w.mu.Unlock()
		return models.Customer{}, false, err
	}
	w.customers = next
	w.mu.Unlock()

	return c, w.persist(ctx, storage.SlotCustomers), nil
}

// SetCustomerStatus changes the status of an existing customer.
func (w *Workspace) SetCustomerStatus(ctx context.Context, id string, status models.CustomerStatus) (models.Customer, bool, error) {
	if _, ok := models.ValidCustomerStatuses[status]; !ok {
		return models.Customer{}, false, fmt.Errorf("%w: unknown customer status %q", record.ErrInvalidRecord, status)
	}

	w.mu.Lock()
	c, ok := w.customers.Get(id)
	if !ok {
		w.mu.Unlock()
		return models.Customer{}, false, fmt.Errorf("%w: %s", record.ErrUnknownIdentity, id)
	}
	c.Status = status
	next, err := w.customers.Replace(c)
	if err != nil {
		w.mu.Unlock()
		return models.Customer{}, false, err
	}
	w.customers = next
	w.mu.Unlock()

	return c, w.persist(ctx, storage.SlotCustomers), nil
}

// DeleteCustomer removes a customer from the registry.
func (w *Workspace) DeleteCustomer(ctx context.Context, id string) (bool, error) {
	w.mu.Lock()
	next, err := w.customers.Delete(id)
	if err != nil {
		w.mu.Unlock()
		return false, err
	}
	w.customers = next
	w.mu.Unlock()

	return w.persist(ctx, storage.SlotCustomers), nil
}
