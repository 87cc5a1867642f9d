package seed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"crm/internal/board"
	"crm/internal/record"
)

func TestSampleDataIsValid(t *testing.T) {
	for _, c := range Customers() {
		require.NoError(t, c.Validate(), c.ID)
	}
	for _, task := range Tasks() {
		require.NoError(t, task.Validate(), task.ID)
	}

	_, err := record.NewCollection(Customers())
	require.NoError(t, err)
	_, err = record.NewCollection(Tasks())
	require.NoError(t, err)

	b, err := board.New(Deals())
	require.NoError(t, err)
	require.Equal(t, int64(145500), b.Total())
}
