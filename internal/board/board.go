// Package board implements the sales pipeline: deals partitioned into
// ordered stage sequences.
//
// A Board is an immutable snapshot. Every operation returns a new Board and
// leaves the receiver as it was; a failed operation returns the receiver
// itself together with the error, so a deal is never observed half moved.
// The stage of a deal is whatever lane holds its id. The Stage field on
// stored deals is only read once, by New and Add.
package board

import (
	"fmt"

	"crm/internal/models"
	"crm/internal/record"
)

// Board is a snapshot of the pipeline.
type Board struct {
	deals map[string]models.Deal
	lanes map[models.Stage][]string
}

// Column is one stage of the board with its deals in order.
type Column struct {
	Stage    models.Stage  `json:"stage"`
	Deals    []models.Deal `json:"deals"`
	Count    int           `json:"count"`
	Total    int64         `json:"total"`
	Weighted int64         `json:"weighted"`
}

// Empty returns a board without deals.
func Empty() *Board {
	return &Board{
		deals: map[string]models.Deal{},
		lanes: map[models.Stage][]string{},
	}
}

// New partitions deals by their Stage field, preserving collection order
// within each stage.
func New(deals []models.Deal) (*Board, error) {
	b := Empty()
	for _, d := range deals {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("%w: deal %s: %v", record.ErrInvalidRecord, d.ID, err)
		}
		if d.ID == "" {
			return nil, fmt.Errorf("%w: deal without id", record.ErrInvalidRecord)
		}
		if _, exists := b.deals[d.ID]; exists {
			return nil, fmt.Errorf("%w: %s", record.ErrDuplicateIdentity, d.ID)
		}
		b.deals[d.ID] = d
		b.lanes[d.Stage] = append(b.lanes[d.Stage], d.ID)
	}
	return b, nil
}

// Len returns the number of deals on the board.
func (b *Board) Len() int {
	return len(b.deals)
}

// Sequence returns a copy of the ids in stage, in board order.
func (b *Board) Sequence(stage models.Stage) []string {
	lane := b.lanes[stage]
	out := make([]string, len(lane))
	copy(out, lane)
	return out
}

// StageOf returns the stage whose sequence holds id.
func (b *Board) StageOf(id string) (models.Stage, bool) {
	stage, _, ok := b.locate(id)
	return stage, ok
}

// Deal returns the deal with its stage taken from the partition.
func (b *Board) Deal(id string) (models.Deal, bool) {
	d, ok := b.deals[id]
	if !ok {
		return models.Deal{}, false
	}
	stage, ok := b.StageOf(id)
	if !ok {
		return models.Deal{}, false
	}
	d.Stage = stage
	return d, true
}

// Deals flattens the board stage by stage in models.Stages order.
func (b *Board) Deals() []models.Deal {
	out := make([]models.Deal, 0, len(b.deals))
	for _, stage := range models.Stages {
		out = append(out, b.stageDeals(stage)...)
	}
	return out
}

// Columns returns every stage with its deals and aggregates.
func (b *Board) Columns() []Column {
	cols := make([]Column, 0, len(models.Stages))
	for _, stage := range models.Stages {
		deals := b.stageDeals(stage)
		cols = append(cols, Column{
			Stage:    stage,
			Deals:    deals,
			Count:    len(deals),
			Total:    b.AggregateValue(stage),
			Weighted: b.WeightedValue(stage),
		})
	}
	return cols
}

// AggregateValue sums the value of the deals currently in stage.
func (b *Board) AggregateValue(stage models.Stage) int64 {
	var total int64
	for _, id := range b.lanes[stage] {
		total += b.deals[id].Value
	}
	return total
}

// WeightedValue sums value scaled by win probability for stage.
func (b *Board) WeightedValue(stage models.Stage) int64 {
	var total int64
	for _, id := range b.lanes[stage] {
		d := b.deals[id]
		total += d.Value * int64(d.Probability) / 100
	}
	return total
}

// Total sums the value of every deal on the board.
func (b *Board) Total() int64 {
	var total int64
	for _, stage := range models.Stages {
		total += b.AggregateValue(stage)
	}
	return total
}

// Reorder moves the deal at from to position to within the same stage.
func (b *Board) Reorder(stage models.Stage, from, to int) (*Board, error) {
	if err := checkStage(stage); err != nil {
		return b, err
	}
	lane := b.lanes[stage]
	if from < 0 || from >= len(lane) || to < 0 || to >= len(lane) {
		return b, fmt.Errorf("%w: reorder %s %d -> %d with %d deals", record.ErrIndexOutOfRange, stage, from, to, len(lane))
	}
	if from == to {
		return b, nil
	}

	id := lane[from]
	next := insertAt(removeAt(lane, from), to, id)
	return b.withLanes(map[models.Stage][]string{stage: next}), nil
}

// MoveAcrossStages takes id out of its current stage and inserts it into
// target at index. The index is resolved against the target sequence after
// the removal and clamped to [0, len].
func (b *Board) MoveAcrossStages(id string, target models.Stage, index int) (*Board, error) {
	if err := checkStage(target); err != nil {
		return b, err
	}
	source, pos, ok := b.locate(id)
	if !ok {
		return b, fmt.Errorf("%w: %s", record.ErrUnknownIdentity, id)
	}

	remaining := removeAt(b.lanes[source], pos)
	dest := remaining
	if target != source {
		dest = b.lanes[target]
	}
	index = clamp(index, 0, len(dest))

	if target == source {
		if index == pos {
			return b, nil
		}
		return b.withLanes(map[models.Stage][]string{source: insertAt(remaining, index, id)}), nil
	}
	return b.withLanes(map[models.Stage][]string{
		source: remaining,
		target: insertAt(dest, index, id),
	}), nil
}

// Add places a new deal at the end of its stage.
func (b *Board) Add(d models.Deal) (*Board, error) {
	if d.ID == "" {
		return b, fmt.Errorf("%w: deal without id", record.ErrInvalidRecord)
	}
	if err := d.Validate(); err != nil {
		return b, fmt.Errorf("%w: %v", record.ErrInvalidRecord, err)
	}
	if _, exists := b.deals[d.ID]; exists {
		return b, fmt.Errorf("%w: %s", record.ErrDuplicateIdentity, d.ID)
	}

	deals := b.copyDeals()
	deals[d.ID] = d
	next := b.withLanes(map[models.Stage][]string{d.Stage: insertAt(b.lanes[d.Stage], len(b.lanes[d.Stage]), d.ID)})
	next.deals = deals
	return next, nil
}

// Delete removes a deal and its stage membership.
func (b *Board) Delete(id string) (*Board, error) {
	stage, pos, ok := b.locate(id)
	if !ok {
		return b, fmt.Errorf("%w: %s", record.ErrUnknownIdentity, id)
	}

	deals := b.copyDeals()
	delete(deals, id)
	next := b.withLanes(map[models.Stage][]string{stage: removeAt(b.lanes[stage], pos)})
	next.deals = deals
	return next, nil
}

func (b *Board) stageDeals(stage models.Stage) []models.Deal {
	lane := b.lanes[stage]
	out := make([]models.Deal, 0, len(lane))
	for _, id := range lane {
		d := b.deals[id]
		d.Stage = stage
		out = append(out, d)
	}
	return out
}

// locate finds the stage and index holding id.
func (b *Board) locate(id string) (models.Stage, int, bool) {
	for _, stage := range models.Stages {
		for i, candidate := range b.lanes[stage] {
			if candidate == id {
				return stage, i, true
			}
		}
	}
	return "", -1, false
}

// withLanes returns a board sharing every lane except the replaced ones.
// Lanes are never modified in place, so sharing is safe.
func (b *Board) withLanes(replaced map[models.Stage][]string) *Board {
	lanes := make(map[models.Stage][]string, len(b.lanes)+len(replaced))
	for stage, lane := range b.lanes {
		lanes[stage] = lane
	}
	for stage, lane := range replaced {
		lanes[stage] = lane
	}
	return &Board{deals: b.deals, lanes: lanes}
}

func (b *Board) copyDeals() map[string]models.Deal {
	deals := make(map[string]models.Deal, len(b.deals)+1)
	for id, d := range b.deals {
		deals[id] = d
	}
	return deals
}

func checkStage(stage models.Stage) error {
	if _, ok := models.ValidStages[stage]; !ok {
		return fmt.Errorf("%w: unknown stage %q", record.ErrInvalidRecord, stage)
	}
	return nil
}

func removeAt(lane []string, i int) []string {
	out := make([]string, 0, len(lane)-1)
	out = append(out, lane[:i]...)
	return append(out, lane[i+1:]...)
}

func insertAt(lane []string, i int, id string) []string {
	out := make([]string, 0, len(lane)+1)
	out = append(out, lane[:i]...)
	out = append(out, id)
	return append(out, lane[i:]...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
