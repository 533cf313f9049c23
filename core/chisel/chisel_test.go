package chisel

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqopt/core/codon"
)

const gcRich = "ATCCGGATATAAGTTGTGGTGAGCGCCTGATCGACAGGTTTCCCGACTGGAAAGCGGGCAGTGAGCGCAACGCAATTAATGTGAGTTAGCTCACTCATTAGGCACCCC"

func TestResolveConstraints(t *testing.T) {
	t.Run("Should repair GC content in every window", func(t *testing.T) {
		gc, err := NewEnforceGCContent(0.4, 0.6, 50, Location{})
		require.NoError(t, err)
		p, err := NewProblem(gcRich, []Constraint{gc}, nil, DefaultOptions())
		require.NoError(t, err)
		require.False(t, p.AllConstraintsPass())

		require.NoError(t, p.ResolveConstraints(context.Background()))
		assert.True(t, p.AllConstraintsPass())
		assert.Len(t, p.Sequence(), len(gcRich))
		assert.Contains(t, p.ConstraintsSummary(), "===> SUCCESS")
	})

	t.Run("Should remove an enzyme site", func(t *testing.T) {
		ap, err := NewAvoidPattern("EcoRI_site", Location{})
		require.NoError(t, err)
		p, err := NewProblem("ATGCCGAATTCCGTAAACCC", []Constraint{ap}, nil, DefaultOptions())
		require.NoError(t, err)
		require.NoError(t, p.ResolveConstraints(context.Background()))
		assert.NotContains(t, p.Sequence(), "GAATTC")
	})

	t.Run("Should find sites across the origin of a circular sequence", func(t *testing.T) {
		ap, err := NewAvoidPattern("GAATTC", Location{})
		require.NoError(t, err)
		p, err := NewCircularProblem("TTCAAAAAAAAAGAA", []Constraint{ap}, nil, DefaultOptions())
		require.NoError(t, err)
		assert.Contains(t, p.ConstraintsSummary(), "===> FAILURE: 1 constraints evaluations failed")

		require.NoError(t, p.ResolveConstraints(context.Background()))
		s := p.Sequence()
		assert.NotContains(t, s+s, "GAATTC")
	})

	t.Run("Should fail when the breach lies in a locked region", func(t *testing.T) {
		ap, err := NewAvoidPattern("EcoRI", Location{})
		require.NoError(t, err)
		keep, err := NewAvoidChanges(Location{Start: 0, End: 12}, "")
		require.NoError(t, err)
		p, err := NewProblem("AAGAATTCAAAAGGGG", []Constraint{ap, keep}, nil, DefaultOptions())
		require.NoError(t, err)

		err = p.ResolveConstraints(context.Background())
		var ns *NoSolutionError
		require.ErrorAs(t, err, &ns)
		assert.Equal(t, "no mutable positions in breached regions", ns.Reason)
		require.Len(t, ns.Failing, 1)
		assert.True(t, strings.HasPrefix(ns.Failing[0], "AvoidPattern"))
	})

	t.Run("Should stop when the context is cancelled", func(t *testing.T) {
		gc, err := NewEnforceGCContent(0.4, 0.6, 50, Location{})
		require.NoError(t, err)
		p, err := NewProblem(gcRich, []Constraint{gc}, nil, DefaultOptions())
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, p.ResolveConstraints(ctx), context.Canceled)
	})
}

func TestResolveMoreConstraints(t *testing.T) {
	t.Run("Should check GC windows across the origin of a circular sequence", func(t *testing.T) {
		const seq = "CCCCCATATAGCATGCATGCATGCATGCATATATAGGGGG"
		gc, err := NewEnforceGCContent(0.2, 0.7, 10, Location{})
		require.NoError(t, err)

		linear, err := NewProblem(seq, []Constraint{gc}, nil, DefaultOptions())
		require.NoError(t, err)
		assert.True(t, linear.AllConstraintsPass())

		p, err := NewCircularProblem(seq, []Constraint{gc}, nil, DefaultOptions())
		require.NoError(t, err)
		ev := gc.Evaluate(p)
		require.False(t, ev.Passes())
		for _, b := range ev.Breaches {
			assert.Greater(t, b.End, len(seq), "breach %v should span the origin", b)
		}

		require.NoError(t, p.ResolveConstraints(context.Background()))
		assert.True(t, p.AllConstraintsPass())
	})

	t.Run("Should pass terminal GC content within bounds", func(t *testing.T) {
		c, err := NewEnforceTerminalGCContent(0.4, 0.6, 10)
		require.NoError(t, err)
		p, err := NewProblem("GCGCATATATACGTACGTACGTATATGCGCAT", []Constraint{c}, nil, DefaultOptions())
		require.NoError(t, err)
		ev := c.Evaluate(p)
		assert.True(t, ev.Passes())
		assert.Equal(t, "terminal GC content within bounds", ev.Message)
	})

	t.Run("Should repair terminal GC content", func(t *testing.T) {
		c, err := NewEnforceTerminalGCContent(0.4, 0.6, 10)
		require.NoError(t, err)
		p, err := NewProblem("AAAAAAAAAAACGTACGTACGTATATGCGCAT", []Constraint{c}, nil, DefaultOptions())
		require.NoError(t, err)
		ev := c.Evaluate(p)
		require.False(t, ev.Passes())
		assert.Equal(t, []Location{{Start: 0, End: 10}}, ev.Breaches)

		require.NoError(t, p.ResolveConstraints(context.Background()))
		assert.True(t, p.AllConstraintsPass())
	})

	t.Run("Should remove matches on both strands", func(t *testing.T) {
		c, err := NewAvoidMatches([]string{"ACGTTGCA"}, Location{})
		require.NoError(t, err)
		p, err := NewProblem("TTTACGTTGCATTTTTGCAACGTTT", []Constraint{c}, nil, DefaultOptions())
		require.NoError(t, err)
		require.False(t, p.AllConstraintsPass())

		require.NoError(t, p.ResolveConstraints(context.Background()))
		assert.NotContains(t, p.Sequence(), "ACGTTGCA")
		assert.NotContains(t, p.Sequence(), "TGCAACGT")
	})

	t.Run("Should replace rare codons and keep the protein", func(t *testing.T) {
		rare, err := NewAvoidRareCodons("e_coli", 0.1, Location{})
		require.NoError(t, err)
		tr := NewEnforceTranslation(Location{}, "")
		p, err := NewProblem("ATGAGGAAATAA", []Constraint{tr, rare}, nil, DefaultOptions())
		require.NoError(t, err)
		require.False(t, p.AllConstraintsPass())

		require.NoError(t, p.ResolveConstraints(context.Background()))
		assert.True(t, p.AllConstraintsPass())
		protein, err := codon.Translate(p.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "MRK*", protein)
		assert.NotEqual(t, "AGG", p.Sequence()[3:6])
	})
}

func TestOptimize(t *testing.T) {
	const cds = "ATGAAGAAGAAGCTGTAA"

	t.Run("Should raise CAI while keeping the protein", func(t *testing.T) {
		tr := NewEnforceTranslation(Location{}, "")
		co, err := NewCodonOptimize("e_coli", Location{}, 1)
		require.NoError(t, err)
		p, err := NewProblem(cds, []Constraint{tr}, []Objective{co}, DefaultOptions())
		require.NoError(t, err)
		tbl, err := codon.Lookup("e_coli")
		require.NoError(t, err)
		before := tbl.CAI([]byte(cds))

		require.NoError(t, p.ResolveConstraints(context.Background()))
		require.NoError(t, p.Optimize(context.Background()))

		protein, err := codon.Translate(p.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "MKKKL*", protein)
		assert.Greater(t, tbl.CAI(p.Bytes()), before)
		assert.Contains(t, p.ObjectivesSummary(), "===> TOTAL OBJECTIVES SCORE:")
	})

	t.Run("Should refuse to optimize while constraints fail", func(t *testing.T) {
		ap, err := NewAvoidPattern("AAGAAG", Location{})
		require.NoError(t, err)
		co, err := NewCodonOptimize("e_coli", Location{}, 1)
		require.NoError(t, err)
		p, err := NewProblem(cds, []Constraint{ap}, []Objective{co}, DefaultOptions())
		require.NoError(t, err)
		assert.ErrorIs(t, p.Optimize(context.Background()), ErrConstraintsFailing)
	})

	t.Run("Should be a no-op without objectives", func(t *testing.T) {
		p, err := NewProblem(cds, nil, nil, DefaultOptions())
		require.NoError(t, err)
		require.NoError(t, p.Optimize(context.Background()))
		assert.Equal(t, cds, p.Sequence())
	})
}

func TestNewProblem(t *testing.T) {
	t.Run("Should reject a location outside the sequence", func(t *testing.T) {
		ap, err := NewAvoidPattern("EcoRI", Location{Start: 5, End: 50})
		require.NoError(t, err)
		_, err = NewProblem("ACGTACGTAC", []Constraint{ap}, nil, DefaultOptions())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside sequence of length 10")
	})

	t.Run("Should reject a coding region not divisible by three", func(t *testing.T) {
		_, err := NewProblem("ATGAAAA", []Constraint{NewEnforceTranslation(Location{}, "")}, nil, DefaultOptions())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a multiple of 3")
	})

	t.Run("Should reject invalid bases", func(t *testing.T) {
		_, err := NewProblem("ACGTNN", nil, nil, DefaultOptions())
		require.Error(t, err)
	})
}

func TestEvaluations(t *testing.T) {
	t.Run("Should count pattern occurrences", func(t *testing.T) {
		c, err := NewEnforcePatternOccurence("GGATCC", 1, Location{})
		require.NoError(t, err)
		p, err := NewProblem("AAGGATCCAAGGATCCAA", []Constraint{c}, nil, DefaultOptions())
		require.NoError(t, err)
		ev := c.Evaluate(p)
		assert.False(t, ev.Passes())
		assert.Equal(t, "2 occurrence(s), want 1", ev.Message)
	})

	t.Run("Should flag hairpin stems", func(t *testing.T) {
		c, err := NewAvoidHairpins(6, 200, Location{})
		require.NoError(t, err)
		p, err := NewProblem("GGGAAACTCTCTTTTCCC", []Constraint{c}, nil, DefaultOptions())
		require.NoError(t, err)
		assert.False(t, c.Evaluate(p).Passes())
	})

	t.Run("Should flag rare codons", func(t *testing.T) {
		c, err := NewAvoidRareCodons("e_coli", 0.1, Location{})
		require.NoError(t, err)
		p, err := NewProblem("ATGAGGAAATAA", []Constraint{c}, nil, DefaultOptions())
		require.NoError(t, err)
		ev := c.Evaluate(p)
		assert.False(t, ev.Passes())
		assert.Equal(t, []Location{{Start: 3, End: 6}}, ev.Breaches)
	})

	t.Run("Should label specifications with their region", func(t *testing.T) {
		gc, err := NewEnforceGCContent(0.3, 0.7, 20, Location{Start: 0, End: 60})
		require.NoError(t, err)
		assert.Equal(t, "EnforceGCContent[0-60](mini:0.30, maxi:0.70, window:20)", gc.Label())
	})
}
