package workspace

import (
	"context"
	"fmt"
	"strings"

	"crm/internal/board"
	"crm/internal/filter"
	"crm/internal/models"
	"crm/internal/record"
	"crm/internal/storage"
)

// Board returns the current pipeline snapshot.
func (w *Workspace) Board() *board.Board {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.board
}

// Pipeline returns the board columns with their deals narrowed by spec.
// Count follows the visible deals; Total and Weighted always cover the
// whole stage.
func (w *Workspace) Pipeline(spec filter.DealSpec) []board.Column {
	cols := w.Board().Columns()
	if spec.IsEmpty() {
		return cols
	}
	for i := range cols {
		cols[i].Deals = filter.Deals(cols[i].Deals, spec)
		cols[i].Count = len(cols[i].Deals)
	}
	return cols
}

// AddDeal mints an identity for d and appends it to the end of its stage.
func (w *Workspace) AddDeal(ctx context.Context, d models.Deal) (models.Deal, bool, error) {
	d.ID = w.newID()
	d.Title = strings.TrimSpace(d.Title)
	d.Company = strings.TrimSpace(d.Company)
	d.Contact = strings.TrimSpace(d.Contact)
	if d.Stage == "" {
		d.Stage = models.StageContacted
	}
	if d.DueDate != "" {
		if _, err := parseDate(d.DueDate); err != nil {
			return models.Deal{}, false, fmt.Errorf("%w: due date %q", record.ErrInvalidRecord, d.DueDate)
		}
	}

	w.mu.Lock()
	next, err := w.board.Add(d)
	if err != nil {
		w.mu.Unlock()
		return models.Deal{}, false, err
	}
	w.board = next
	w.mu.Unlock()

	return d, w.persist(ctx, storage.SlotDeals), nil
}

// DeleteDeal removes a deal and its stage membership.
func (w *Workspace) DeleteDeal(ctx context.Context, id string) (bool, error) {
	return w.mutateBoard(ctx, func(b *board.Board) (*board.Board, error) {
		return b.Delete(id)
	})
}

// ReorderDeals moves a deal within stage.
func (w *Workspace) ReorderDeals(ctx context.Context, stage models.Stage, from, to int) (bool, error) {
	return w.mutateBoard(ctx, func(b *board.Board) (*board.Board, error) {
		return b.Reorder(stage, from, to)
	})
}

// MoveDeal transfers a deal to target at index.
func (w *Workspace) MoveDeal(ctx context.Context, id string, target models.Stage, index int) (bool, error) {
	return w.mutateBoard(ctx, func(b *board.Board) (*board.Board, error) {
		return b.MoveAcrossStages(id, target, index)
	})
}

// mutateBoard applies op to the current board and swaps in the result.
// Unchanged boards are not persisted again.
func (w *Workspace) mutateBoard(ctx context.Context, op func(*board.Board) (*board.Board, error)) (bool, error) {
	w.mu.Lock()
	current := w.board
	next, err := op(current)
	if err != nil {
		w.mu.Unlock()
		return false, err
	}
	w.board = next
	w.mu.Unlock()

	if next == current {
		return true, nil
	}
	return w.persist(ctx, storage.SlotDeals), nil
}
