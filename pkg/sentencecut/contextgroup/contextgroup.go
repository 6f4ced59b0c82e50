// Package contextgroup derives the per-row Context column: everything a
// classifier should read alongside a statement, grouped by record id
// and ordered by turn.
package contextgroup

import (
	"sort"
	"strings"
)

// Policy selects how context is accumulated within an id group.
type Policy string

const (
	// PolicyRolling gives each row the text strictly before it in the
	// group's order.
	PolicyRolling Policy = "rolling"
	// PolicyWhole gives every row the full group text.
	PolicyWhole Policy = "whole"
)

// Granularity is the unit one output row corresponds to.
type Granularity string

const (
	GranularitySentence Granularity = "sentence"
	GranularityTurn     Granularity = "turn"
	GranularityPost     Granularity = "post"
)

// Row is the minimal shape context derivation needs. Order is the row's
// original position and breaks (id, turn) ties during sorting.
type Row struct {
	ID        string
	Turn      int
	Order     int
	Statement string
	Context   string
}

// Apply sorts rows by (id, turn, original order) and fills Context
// according to policy and granularity. The input slice is not modified;
// the returned slice is in sorted order. Each group is handled with a
// single linear fold.
func Apply(rows []Row, policy Policy, granularity Granularity) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		if out[i].Turn != out[j].Turn {
			return out[i].Turn < out[j].Turn
		}
		return out[i].Order < out[j].Order
	})

	for start := 0; start < len(out); {
		end := start + 1
		for end < len(out) && out[end].ID == out[start].ID {
			end++
		}
		group := out[start:end]

		switch {
		case policy == PolicyWhole:
			applyWhole(group)
		case granularity == GranularityTurn:
			applyRollingTurn(group)
		case granularity == GranularityPost:
			// a post-level statement has nothing earlier to roll over
			for i := range group {
				group[i].Context = ""
			}
		default:
			applyRollingSentence(group)
		}
		start = end
	}

	return out
}

// applyWhole joins every statement in the group once and broadcasts it.
func applyWhole(group []Row) {
	var b strings.Builder
	for _, r := range group {
		if r.Statement == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.Statement)
	}
	whole := b.String()
	for i := range group {
		group[i].Context = whole
	}
}

// applyRollingSentence emits the accumulator before folding the current
// statement in, so each row sees only strictly prior rows.
func applyRollingSentence(group []Row) {
	var acc strings.Builder
	for i := range group {
		group[i].Context = acc.String()
		if group[i].Statement == "" {
			continue
		}
		if acc.Len() > 0 {
			acc.WriteByte(' ')
		}
		acc.WriteString(group[i].Statement)
	}
}

// applyRollingTurn rolls at turn granularity: every row of a turn gets
// the concatenation of strictly earlier turns, never text from its own
// turn.
func applyRollingTurn(group []Row) {
	var acc strings.Builder
	for i := 0; i < len(group); {
		j := i + 1
		for j < len(group) && group[j].Turn == group[i].Turn {
			j++
		}

		ctx := acc.String()
		for k := i; k < j; k++ {
			group[k].Context = ctx
		}
		for k := i; k < j; k++ {
			if group[k].Statement == "" {
				continue
			}
			if acc.Len() > 0 {
				acc.WriteByte(' ')
			}
			acc.WriteString(group[k].Statement)
		}
		i = j
	}
}
