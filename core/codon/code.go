// core/codon/code.go
package codon

import (
	"fmt"
	"sort"
)

// Stop is the amino-acid symbol used for stop codons.
const Stop = '*'

var standardCode = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": Stop, "TAG": Stop,
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": Stop, "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// synonyms maps an amino acid to its codons in lexical order.
var synonyms = func() map[byte][]string {
	m := make(map[byte][]string, 21)
	for c, aa := range standardCode {
		m[aa] = append(m[aa], c)
	}
	for aa := range m {
		sort.Strings(m[aa])
	}
	return m
}()

// AminoAcid translates one codon; ok is false for anything that is not
// a three-letter A/C/G/T codon.
func AminoAcid(codon string) (byte, bool) {
	aa, ok := standardCode[codon]
	return aa, ok
}

// Synonyms returns every codon encoding the same amino acid as codon,
// including codon itself.
func Synonyms(codon string) []string {
	aa, ok := standardCode[codon]
	if !ok {
		return nil
	}
	return synonyms[aa]
}

// CodonsFor returns the codons encoding amino acid aa.
func CodonsFor(aa byte) []string { return synonyms[aa] }

// Translate converts a coding sequence whose length is a multiple of 3.
func Translate(cds []byte) (string, error) {
	if len(cds)%3 != 0 {
		return "", fmt.Errorf("coding sequence length %d is not a multiple of 3", len(cds))
	}
	out := make([]byte, 0, len(cds)/3)
	for i := 0; i < len(cds); i += 3 {
		aa, ok := standardCode[string(cds[i:i+3])]
		if !ok {
			return "", fmt.Errorf("invalid codon %q at %d", cds[i:i+3], i)
		}
		out = append(out, aa)
	}
	return string(out), nil
}
