// core/codon/usage.go
package codon

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Table holds per-amino-acid relative codon frequencies for one species.
type Table struct {
	Species string
	freq    map[string]float64
	best    map[byte]float64
}

// Frequency returns the relative usage of codon among its synonyms.
func (t *Table) Frequency(codon string) float64 { return t.freq[codon] }

// RelativeAdaptiveness is the codon frequency divided by the frequency
// of the most used synonymous codon (w in the CAI definition).
func (t *Table) RelativeAdaptiveness(codon string) float64 {
	aa, ok := standardCode[codon]
	if !ok {
		return 0
	}
	if b := t.best[aa]; b > 0 {
		return t.freq[codon] / b
	}
	return 0
}

// CAI returns the codon adaptation index of a coding sequence, skipping
// Met, Trp and stop codons which have no synonymous choice that matters.
func (t *Table) CAI(cds []byte) float64 {
	sum, n := 0.0, 0
	for i := 0; i+3 <= len(cds); i += 3 {
		c := string(cds[i : i+3])
		aa, ok := standardCode[c]
		if !ok || aa == 'M' || aa == 'W' || aa == Stop {
			continue
		}
		w := t.RelativeAdaptiveness(c)
		if w <= 0 {
			w = 1e-3
		}
		sum += math.Log(w)
		n++
	}
	if n == 0 {
		return 1
	}
	return math.Exp(sum / float64(n))
}

var tables = map[string]*Table{}

func register(species string, freq map[string]float64) {
	t := &Table{Species: species, freq: freq, best: map[byte]float64{}}
	for c, f := range freq {
		aa := standardCode[c]
		if f > t.best[aa] {
			t.best[aa] = f
		}
	}
	tables[species] = t
}

// Lookup returns the usage table for a species key such as "e_coli".
func Lookup(species string) (*Table, error) {
	key := strings.ToLower(strings.TrimSpace(species))
	if t, ok := tables[key]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown species %q (known: %s)", species, strings.Join(Species(), ", "))
}

// Species lists the registered species keys.
func Species() []string {
	out := make([]string, 0, len(tables))
	for k := range tables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
