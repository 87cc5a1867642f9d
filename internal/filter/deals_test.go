package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/models"
)

func TestDealsSearchAndStages(t *testing.T) {
	deals := []models.Deal{
		{ID: "1", Title: "Website Redesign", Company: "Acme Corp", Contact: "Sarah Johnson", Stage: models.StageProposal},
		{ID: "2", Title: "Software Integration", Company: "TechStart", Contact: "John Williams", Stage: models.StageNegotiation},
		{ID: "3", Title: "Cloud Migration", Company: "Future Vision", Contact: "David Miller", Stage: models.StageNegotiation},
	}

	assert.Equal(t, deals, Deals(deals, DealSpec{}))

	got := Deals(deals, DealSpec{Query: "john"})
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)

	got = Deals(deals, DealSpec{Stages: []models.Stage{models.StageNegotiation}})
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)

	got = Deals(deals, DealSpec{Query: "vision", Stages: []models.Stage{models.StageProposal}})
	assert.Empty(t, got)
}

func TestParseStages(t *testing.T) {
	stages, err := ParseStages("Closed,contacted")
	require.NoError(t, err)
	assert.Equal(t, []models.Stage{models.StageClosed, models.StageContacted}, stages)

	_, err = ParseStages("won")
	assert.Error(t, err)
}
