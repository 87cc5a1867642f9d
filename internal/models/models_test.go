package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerValidate(t *testing.T) {
	valid := Customer{ID: "1", Name: "Emily Davis", Status: StatusActive}
	assert.NoError(t, valid.Validate())

	withTier := valid
	withTier.Subscription = SubscriptionStandard
	assert.NoError(t, withTier.Validate())

	cases := map[string]Customer{
		"blank name":     {Name: "  ", Status: StatusLead},
		"bad status":     {Name: "x", Status: "prospect"},
		"bad tier":       {Name: "x", Status: StatusLead, Subscription: "Gold"},
		"lowercase tier": {Name: "x", Status: StatusLead, Subscription: "basic"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, c.Validate())
		})
	}
}

func TestDealValidate(t *testing.T) {
	d := Deal{ID: "1", Title: "Cloud Migration", Value: 30000, Probability: 50, Stage: StageNegotiation}
	assert.NoError(t, d.Validate())

	for _, mutate := range []func(*Deal){
		func(d *Deal) { d.Title = "" },
		func(d *Deal) { d.Value = -1 },
		func(d *Deal) { d.Probability = 101 },
		func(d *Deal) { d.Probability = -5 },
		func(d *Deal) { d.Stage = "won" },
	} {
		bad := d
		mutate(&bad)
		assert.Error(t, bad.Validate())
	}
}

func TestTaskToggled(t *testing.T) {
	task := Task{Title: "Call", Status: TaskInProgress, Priority: PriorityHigh}
	assert.NoError(t, task.Validate())

	done := task.Toggled()
	assert.Equal(t, TaskDone, done.Status)
	assert.Equal(t, TaskInProgress, task.Status)
	assert.Equal(t, TaskTodo, done.Toggled().Status)

	task.RelatedTo = &Relation{Type: "invoice", Name: "x"}
	assert.Error(t, task.Validate())
}
