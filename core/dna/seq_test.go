package dna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("Should uppercase and strip whitespace", func(t *testing.T) {
		got, err := Validate(" acgt\nTTga ")
		require.NoError(t, err)
		assert.Equal(t, "ACGTTTGA", got)
	})

	t.Run("Should reject empty input", func(t *testing.T) {
		_, err := Validate("  ")
		require.Error(t, err)
	})

	t.Run("Should reject ambiguity codes", func(t *testing.T) {
		_, err := Validate("ACGN")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at 4")
	})
}

func TestRevComp(t *testing.T) {
	assert.Equal(t, []byte("GACT"), RevComp([]byte("AGTC")))
	assert.Equal(t, []byte("NBDHVKMWSRY"), RevComp([]byte("RYSWKMBDHVN")))
	assert.Nil(t, RevComp(nil))
}

func TestGCFraction(t *testing.T) {
	assert.InDelta(t, 0.5, GCFraction([]byte("ACGT")), 1e-9)
	assert.InDelta(t, 0.0, GCFraction(nil), 1e-9)
}

func TestCompilePattern(t *testing.T) {
	t.Run("Should resolve enzyme names", func(t *testing.T) {
		p, err := CompilePattern("EcoRI_site")
		require.NoError(t, err)
		assert.Equal(t, []byte("GAATTC"), p.Site)

		p, err = CompilePattern("bsai")
		require.NoError(t, err)
		assert.Equal(t, []byte("GGTCTC"), p.Site)
	})

	t.Run("Should find non-palindromic sites on both strands", func(t *testing.T) {
		p, err := CompilePattern("BsaI_site")
		require.NoError(t, err)
		seq := []byte("AAGGTCTCAAAAGAGACCAA")
		assert.Equal(t, []int{2, 12}, p.FindAll(seq, false))
	})

	t.Run("Should find sites spanning the origin when circular", func(t *testing.T) {
		p, err := CompilePattern("GAATTC")
		require.NoError(t, err)
		seq := []byte("TTCAAAAAAGAA")
		assert.Empty(t, p.FindAll(seq, false))
		assert.Equal(t, []int{9}, p.FindAll(seq, true))
	})

	t.Run("Should reject garbage motifs", func(t *testing.T) {
		_, err := CompilePattern("not-a-site!")
		require.Error(t, err)
	})
}

func TestFindHairpins(t *testing.T) {
	// GGGAAA ... TTTCCC forms a 6-nt stem.
	seq := []byte("GGGAAACTCTCTTTTCCC")
	hp := FindHairpins(seq, 6, 200)
	require.NotEmpty(t, hp)
	assert.Equal(t, 0, hp[0].Start)
	assert.Equal(t, 12, hp[0].Partner)

	assert.Empty(t, FindHairpins([]byte("AAAAAAAAAAAAAAAA"), 6, 200))
	assert.Empty(t, FindHairpins(seq, 6, 10), "partner lies outside the window")
}
