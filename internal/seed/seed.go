// Package seed provides the sample registry, pipeline and task list written
// to empty storage slots on first start.
package seed

import "crm/internal/models"

// Customers returns the sample customer registry.
func Customers() []models.Customer {
	return []models.Customer{
		{ID: "1", Name: "Sarah Johnson", Company: "Acme Corp", Email: "sarah.johnson@acme.com", Phone: "+1 (555) 123-4567", Status: models.StatusActive, Subscription: models.SubscriptionPremium, LastContact: "2 days ago"},
		{ID: "2", Name: "John Williams", Company: "TechStart", Email: "john.williams@techstart.com", Phone: "+1 (555) 234-5678", Status: models.StatusLead, LastContact: "1 week ago"},
		{ID: "3", Name: "Emily Davis", Company: "Global Industries", Email: "emily.davis@global.com", Phone: "+1 (555) 345-6789", Status: models.StatusActive, Subscription: models.SubscriptionBasic, LastContact: "Yesterday"},
		{ID: "4", Name: "Michael Brown", Company: "Nexus Systems", Email: "michael.brown@nexus.com", Phone: "+1 (555) 456-7890", Status: models.StatusInactive, Subscription: models.SubscriptionStandard, LastContact: "1 month ago"},
		{ID: "5", Name: "Jennifer Taylor", Company: "Bright Solutions", Email: "jennifer.taylor@bright.com", Phone: "+1 (555) 567-8901", Status: models.StatusActive, Subscription: models.SubscriptionPremium, LastContact: "3 days ago"},
		{ID: "6", Name: "David Miller", Company: "Future Vision", Email: "david.miller@future.com", Phone: "+1 (555) 678-9012", Status: models.StatusLead, LastContact: "5 days ago"},
	}
}

// Deals returns the sample pipeline.
func Deals() []models.Deal {
	return []models.Deal{
		{ID: "1", Title: "Website Redesign", Company: "Acme Corp", Value: 12500, Probability: 80, Contact: "Sarah Johnson", DueDate: "2023-06-15", Stage: models.StageProposal},
		{ID: "2", Title: "Software Integration", Company: "TechStart", Value: 25000, Probability: 60, Contact: "John Williams", DueDate: "2023-07-01", Stage: models.StageNegotiation},
		{ID: "3", Title: "Marketing Campaign", Company: "Global Industries", Value: 8000, Probability: 90, Contact: "Emily Davis", DueDate: "2023-06-10", Stage: models.StageContacted},
		{ID: "4", Title: "Consulting Services", Company: "Nexus Systems", Value: 20000, Probability: 75, Contact: "Michael Brown", Stage: models.StageClosed},
		{ID: "5", Title: "Product Training", Company: "Bright Solutions", Value: 5000, Probability: 95, Contact: "Jennifer Taylor", DueDate: "2023-06-30", Stage: models.StageProposal},
		{ID: "6", Title: "Cloud Migration", Company: "Future Vision", Value: 30000, Probability: 50, Contact: "David Miller", DueDate: "2023-07-15", Stage: models.StageNegotiation},
		{ID: "7", Title: "App Development", Company: "InnoTech", Value: 45000, Probability: 40, Contact: "Lisa Chen", DueDate: "2023-08-01", Stage: models.StageContacted},
	}
}

// Tasks returns the sample task list.
func Tasks() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Call Sarah about website requirements", Description: "Discuss the scope and timeline for the Acme Corp website redesign", DueDate: "2023-06-10", Priority: models.PriorityHigh, Status: models.TaskTodo, Assignee: "John Doe", RelatedTo: &models.Relation{Type: "customer", Name: "Acme Corp"}},
		{ID: "2", Title: "Prepare proposal for TechStart", DueDate: "2023-06-15", Priority: models.PriorityMedium, Status: models.TaskInProgress, Assignee: "Jane Smith", RelatedTo: &models.Relation{Type: "deal", Name: "Software Integration"}},
		{ID: "3", Title: "Follow up with Global Industries", Description: "Check on the status of the marketing campaign proposal", DueDate: "2023-06-08", Priority: models.PriorityLow, Status: models.TaskTodo, Assignee: "John Doe"},
		{ID: "4", Title: "Send contract to Nexus Systems", DueDate: "2023-06-05", Priority: models.PriorityHigh, Status: models.TaskDone, Assignee: "Jane Smith", RelatedTo: &models.Relation{Type: "deal", Name: "Consulting Services"}},
		{ID: "5", Title: "Schedule training session", Description: "Coordinate a time for the product training with Bright Solutions", DueDate: "2023-06-12", Priority: models.PriorityMedium, Status: models.TaskTodo, Assignee: "John Doe", RelatedTo: &models.Relation{Type: "customer", Name: "Bright Solutions"}},
		{ID: "6", Title: "Review cloud migration plan", DueDate: "2023-06-20", Priority: models.PriorityMedium, Status: models.TaskInProgress, Assignee: "Jane Smith", RelatedTo: &models.Relation{Type: "deal", Name: "Cloud Migration"}},
	}
}
