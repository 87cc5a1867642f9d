// Package filter derives read-only views over record collections. Every
// function here is pure: the input slice is never modified and the view
// keeps the input's relative order.
package filter

import (
	"fmt"
	"strings"

	"crm/internal/models"
	"crm/internal/record"
)

// CustomerSpec combines the registry search box with the status and
// subscription dropdowns. Empty sets impose no constraint.
type CustomerSpec struct {
	Query         string                  `json:"query"`
	Statuses      []models.CustomerStatus `json:"statuses"`
	Subscriptions []models.Subscription   `json:"subscriptions"`
}

// IsEmpty reports whether the filter constrains nothing.
func (s CustomerSpec) IsEmpty() bool {
	return normalizeQuery(s.Query) == "" && len(s.Statuses) == 0 && len(s.Subscriptions) == 0
}

// Customers returns the customers matching every dimension of spec.
func Customers(customers []models.Customer, spec CustomerSpec) []models.Customer {
	out := make([]models.Customer, 0, len(customers))
	if spec.IsEmpty() {
		return append(out, customers...)
	}

	query := normalizeQuery(spec.Query)
	statuses := toSet(spec.Statuses)
	subscriptions := toSet(spec.Subscriptions)

	for _, c := range customers {
		if !matchesQuery(query, c.Name, c.Company, c.Email) {
			continue
		}
		if len(statuses) > 0 {
			if _, ok := statuses[c.Status]; !ok {
				continue
			}
		}
		if len(subscriptions) > 0 {
			if !c.HasSubscription() {
				continue
			}
			if _, ok := subscriptions[c.Subscription]; !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// ParseStatuses splits a comma separated list of customer statuses.
func ParseStatuses(raw string) ([]models.CustomerStatus, error) {
	var out []models.CustomerStatus
	for _, part := range splitList(raw) {
		status := models.CustomerStatus(strings.ToLower(part))
		if _, ok := models.ValidCustomerStatuses[status]; !ok {
			return nil, fmt.Errorf("%w: unknown status %q", record.ErrInvalidRecord, part)
		}
		out = append(out, status)
	}
	return out, nil
}

// ParseSubscriptions splits a comma separated list of subscription tiers.
// Matching is case-insensitive; the canonical tier name is returned.
func ParseSubscriptions(raw string) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, part := range splitList(raw) {
		found := false
		for tier := range models.ValidSubscriptions {
			if strings.EqualFold(string(tier), part) {
				out = append(out, tier)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: unknown subscription %q", record.ErrInvalidRecord, part)
		}
	}
	return out, nil
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// matchesQuery expects an already normalized query.
func matchesQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func toSet[T comparable](values []T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
