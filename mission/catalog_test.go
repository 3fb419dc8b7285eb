package mission

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Run("destinations keep insertion order", func(t *testing.T) {
		c := NewCatalog(5)
		c.AddMove("Base", "C", Cost{Fuel: 1})
		c.AddMove("Base", "A", Cost{Fuel: 2})
		c.AddMove("Base", "B", Cost{Fuel: 3})

		require.Equal(t, []Location{"C", "A", "B"}, c.Destinations("Base"))
	})

	t.Run("updating a route keeps its position", func(t *testing.T) {
		c := NewCatalog(5)
		c.AddMove("Base", "A", Cost{Fuel: 1, Time: 1})
		c.AddMove("Base", "B", Cost{Fuel: 2, Time: 2})
		c.AddMove("Base", "A", Cost{Fuel: 9, Time: 9})

		require.Equal(t, []Location{"A", "B"}, c.Destinations("Base"))
		cost, ok := c.Move("Base", "A")
		require.True(t, ok)
		require.Equal(t, Cost{Fuel: 9, Time: 9}, cost)
		require.Equal(t, 2, c.Len())
	})

	t.Run("removing the last route drops the origin", func(t *testing.T) {
		c := NewCatalog(5)
		c.AddMove("Base", "A", Cost{})
		c.AddMove("A", "Base", Cost{})

		require.True(t, c.RemoveMove("Base", "A"))
		require.False(t, c.RemoveMove("Base", "A"), "Route was already removed")
		require.Nil(t, c.Destinations("Base"))
		require.Equal(t, []Route{{From: "A", To: "Base"}}, c.Routes())
	})

	t.Run("unknown origin has no moves", func(t *testing.T) {
		c := NewCatalog(5)
		_, ok := c.Move("Nowhere", "A")
		require.False(t, ok)
		require.Empty(t, c.Destinations("Nowhere"))
	})

	t.Run("zero value catalog accepts moves", func(t *testing.T) {
		var c Catalog
		c.AddMove("Base", "A", Cost{Fuel: 1})
		require.Equal(t, 1, c.Len())
	})
}
