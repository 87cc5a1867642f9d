package models

import (
	"fmt"
	"strings"
)

// CustomerStatus is the relationship state of a customer.
type CustomerStatus string

const (
	StatusActive   CustomerStatus = "active"
	StatusInactive CustomerStatus = "inactive"
	StatusLead     CustomerStatus = "lead"
)

// Subscription is the optional plan tier of a customer.
type Subscription string

const (
	SubscriptionBasic    Subscription = "Basic"
	SubscriptionStandard Subscription = "Standard"
	SubscriptionPremium  Subscription = "Premium"
)

// Stage is a column of the sales pipeline board.
type Stage string

const (
	StageContacted   Stage = "contacted"
	StageNegotiation Stage = "negotiation"
	StageProposal    Stage = "proposal"
	StageClosed      Stage = "closed"
)

// Stages lists the pipeline columns in display order.
var Stages = []Stage{StageContacted, StageNegotiation, StageProposal, StageClosed}

// ValidCustomerStatuses enumerates the statuses a customer may carry.
var ValidCustomerStatuses = map[CustomerStatus]struct{}{
	StatusActive:   {},
	StatusInactive: {},
	StatusLead:     {},
}

// ValidSubscriptions enumerates the subscription tiers.
var ValidSubscriptions = map[Subscription]struct{}{
	SubscriptionBasic:    {},
	SubscriptionStandard: {},
	SubscriptionPremium:  {},
}

// ValidStages enumerates the board columns.
var ValidStages = map[Stage]struct{}{
	StageContacted:   {},
	StageNegotiation: {},
	StageProposal:    {},
	StageClosed:      {},
}

// Customer is a single entry of the customer registry.
type Customer struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Company      string         `json:"company"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Status       CustomerStatus `json:"status"`
	Subscription Subscription   `json:"subscription,omitempty"`
	LastContact  string         `json:"lastContact,omitempty"`
}

// RecordID implements record.Record.
func (c Customer) RecordID() string { return c.ID }

// HasSubscription reports whether the customer carries a plan tier.
func (c Customer) HasSubscription() bool { return c.Subscription != "" }

// Validate checks required fields and enumerations.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("customer name must not be empty")
	}
	if _, ok := ValidCustomerStatuses[c.Status]; !ok {
		return fmt.Errorf("unknown customer status %q", c.Status)
	}
	if c.HasSubscription() {
		if _, ok := ValidSubscriptions[c.Subscription]; !ok {
			return fmt.Errorf("unknown subscription %q", c.Subscription)
		}
	}
	return nil
}

// Deal is a sales opportunity placed on the pipeline board.
type Deal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Value       int64  `json:"value"`
	Probability int    `json:"probability"`
	Contact     string `json:"contact"`
	DueDate     string `json:"dueDate,omitempty"`
	Stage       Stage  `json:"stage"`
}

// RecordID implements record.Record.
func (d Deal) RecordID() string { return d.ID }

// Validate checks the monetary and probability bounds and the stage.
func (d Deal) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("deal title must not be empty")
	}
	if d.Value < 0 {
		return fmt.Errorf("deal value must not be negative")
	}
	if d.Probability < 0 || d.Probability > 100 {
		return fmt.Errorf("deal probability must be within 0..100")
	}
	if _, ok := ValidStages[d.Stage]; !ok {
		return fmt.Errorf("unknown stage %q", d.Stage)
	}
	return nil
}

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskDone       TaskStatus = "done"
)

// Priority ranks the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var validTaskStatuses = map[TaskStatus]struct{}{
	TaskTodo:       {},
	TaskInProgress: {},
	TaskDone:       {},
}

var validPriorities = map[Priority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
}

// Relation links a task to a customer or a deal by display name.
type Relation struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Task is a follow-up item on the task list.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     string     `json:"dueDate,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	Assignee    string     `json:"assignee,omitempty"`
	RelatedTo   *Relation  `json:"relatedTo,omitempty"`
}

// RecordID implements record.Record.
func (t Task) RecordID() string { return t.ID }

// Validate checks the title and enumerations. Empty status and priority are
// filled with defaults before validation by the caller.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if _, ok := validTaskStatuses[t.Status]; !ok {
		return fmt.Errorf("unknown task status %q", t.Status)
	}
	if _, ok := validPriorities[t.Priority]; !ok {
		return fmt.Errorf("unknown priority %q", t.Priority)
	}
	if t.RelatedTo != nil && t.RelatedTo.Type != "customer" && t.RelatedTo.Type != "deal" {
		return fmt.Errorf("unknown relation type %q", t.RelatedTo.Type)
	}
	return nil
}

// Toggled flips a task between done and todo.
func (t Task) Toggled() Task {
	if t.Status == TaskDone {
		t.Status = TaskTodo
	} else {
		t.Status = TaskDone
	}
	return t
}
