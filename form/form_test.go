package form

import (
	"testing"

	"drone/config"

	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	v, err := ParseNumber(" 12.5 ")
	require.NoError(t, err)
	require.Equal(t, 12.5, v)

	_, err = ParseNumber("ten")
	require.ErrorIs(t, err, ErrNotNumber)
}

func TestParseTargets(t *testing.T) {
	require.Equal(t, []string{"A", "B"}, ParseTargets(" A, ,B,"))
	require.Nil(t, ParseTargets("  "))
}

func TestParseMoves(t *testing.T) {
	t.Run("rows, comments and blank lines", func(t *testing.T) {
		moves, err := ParseMoves("# from to fuel time\nBase A 20 10\n\n  A Base 20.5 10\n")

		require.NoError(t, err)
		require.Equal(t, []config.Move{
			{From: "Base", To: "A", Fuel: 20, Time: 10},
			{From: "A", To: "Base", Fuel: 20.5, Time: 10},
		}, moves)
	})

	t.Run("non-numeric cost", func(t *testing.T) {
		_, err := ParseMoves("Base A twenty 10")
		require.ErrorIs(t, err, ErrNotNumber)
		require.ErrorContains(t, err, "line 1")
	})

	t.Run("missing location", func(t *testing.T) {
		_, err := ParseMoves("Base 20 10")
		require.ErrorIs(t, err, ErrMalformedMove)
	})

	t.Run("format round trips", func(t *testing.T) {
		moves := config.Default().Moves
		got, err := ParseMoves(FormatMoves(moves))
		require.NoError(t, err)
		require.Equal(t, moves, got)
	})
}

func TestInputApply(t *testing.T) {
	t.Run("prefilled form yields the same config", func(t *testing.T) {
		cfg := config.Default()
		got, err := FromConfig(cfg).Apply(cfg)
		require.NoError(t, err)
		require.Equal(t, cfg, got)
	})

	t.Run("edits are applied", func(t *testing.T) {
		in := FromConfig(config.Default())
		in.InitialFuel = "60"
		in.Targets = "A"
		in.Moves = "Base A 20 10\nA Base 20 10"

		got, err := in.Apply(config.Default())

		require.NoError(t, err)
		require.Equal(t, 60.0, got.InitialFuel)
		require.Equal(t, []string{"A"}, got.Targets)
		require.Len(t, got.Moves, 2)
	})

	t.Run("bad numbers are rejected", func(t *testing.T) {
		in := FromConfig(config.Default())
		in.MaxTime = "soon"
		_, err := in.Apply(config.Default())
		require.ErrorIs(t, err, ErrNotNumber)
	})

	t.Run("an empty move table is rejected", func(t *testing.T) {
		in := FromConfig(config.Default())
		in.Moves = ""
		_, err := in.Apply(config.Default())
		require.ErrorIs(t, err, config.ErrInvalid)
	})
}
