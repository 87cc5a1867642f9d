package filter

import (
	"fmt"
	"strings"

	"crm/internal/models"
	"crm/internal/record"
)

// DealSpec narrows the pipeline board to matching deals.
type DealSpec struct {
	Query  string         `json:"query"`
	Stages []models.Stage `json:"stages"`
}

// IsEmpty reports whether the filter constrains nothing.
func (s DealSpec) IsEmpty() bool {
	return normalizeQuery(s.Query) == "" && len(s.Stages) == 0
}

// Deals searches title, company and contact and restricts to the selected stages.
func Deals(deals []models.Deal, spec DealSpec) []models.Deal {
	out := make([]models.Deal, 0, len(deals))
	if spec.IsEmpty() {
		return append(out, deals...)
	}

	query := normalizeQuery(spec.Query)
	stages := toSet(spec.Stages)
	for _, d := range deals {
		if !matchesQuery(query, d.Title, d.Company, d.Contact) {
			continue
		}
		if len(stages) > 0 {
			if _, ok := stages[d.Stage]; !ok {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

// ParseStages splits a comma separated list of stage identifiers.
func ParseStages(raw string) ([]models.Stage, error) {
	var out []models.Stage
	for _, part := range splitList(raw) {
		stage := models.Stage(strings.ToLower(part))
		if _, ok := models.ValidStages[stage]; !ok {
			return nil, fmt.Errorf("%w: unknown stage %q", record.ErrInvalidRecord, part)
		}
		out = append(out, stage)
	}
	return out, nil
}
