package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"drone/config"
)

var (
	ErrNotNumber     = errors.New("fuel and time must be numbers")
	ErrMalformedMove = errors.New("move must be written as: from to fuel time")
)

// ParseNumber parses a decimal number, ignoring surrounding whitespace.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	return v, nil
}

// ParseTargets splits a comma separated list, dropping blanks.
func ParseTargets(s string) []string {
	var targets []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			targets = append(targets, t)
		}
	}
	return targets
}

// ParseMove reads one "from to fuel time" row.
func ParseMove(line string) (config.Move, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return config.Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, line)
	}
	fuel, err := ParseNumber(fields[2])
	if err != nil {
		return config.Move{}, err
	}
	time, err := ParseNumber(fields[3])
	if err != nil {
		return config.Move{}, err
	}
	return config.Move{From: fields[0], To: fields[1], Fuel: fuel, Time: time}, nil
}

// ParseMoves reads one move per line. Blank lines and lines starting with #
// are skipped.
func ParseMoves(text string) ([]config.Move, error) {
	var moves []config.Move
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		move, err := ParseMove(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		moves = append(moves, move)
	}
	return moves, nil
}

// FormatMoves is the inverse of ParseMoves.
func FormatMoves(moves []config.Move) string {
	lines := make([]string, len(moves))
	for i, m := range moves {
		lines[i] = fmt.Sprintf("%s %s %s %s", m.From, m.To, formatNumber(m.Fuel), formatNumber(m.Time))
	}
	return strings.Join(lines, "\n")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
