package codon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	got, err := Translate([]byte("ATGAAATAA"))
	require.NoError(t, err)
	assert.Equal(t, "MK*", got)

	_, err = Translate([]byte("ATGA"))
	require.Error(t, err)
}

func TestSynonyms(t *testing.T) {
	assert.Equal(t, []string{"AAA", "AAG"}, Synonyms("AAG"))
	assert.Equal(t, []string{"ATG"}, Synonyms("ATG"))
	assert.Len(t, Synonyms("CTG"), 6)
	assert.Nil(t, Synonyms("NNN"))
}

func TestTablesAreComplete(t *testing.T) {
	for _, sp := range Species() {
		tbl, err := Lookup(sp)
		require.NoError(t, err)
		for c := range standardCode {
			assert.Greater(t, tbl.Frequency(c), 0.0, "%s %s", sp, c)
		}
	}
}

func TestCAI(t *testing.T) {
	tbl, err := Lookup("E_COLI")
	require.NoError(t, err)

	// Lys: AAA is preferred in E. coli, AAG is not.
	best := tbl.CAI([]byte("AAAAAAAAA"))
	worst := tbl.CAI([]byte("AAGAAGAAG"))
	assert.InDelta(t, 1.0, best, 1e-9)
	assert.Less(t, worst, best)

	_, err = Lookup("martian")
	require.Error(t, err)
}
