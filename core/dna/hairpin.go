// core/dna/hairpin.go
package dna

// Hairpin marks a stem at [Start, Start+Stem) pairing with the reverse
// complement found at [Partner, Partner+Stem).
type Hairpin struct {
	Start   int
	Partner int
	Stem    int
}

// FindHairpins scans seq for k-mers of length stem whose reverse
// complement occurs downstream within window nucleotides.
func FindHairpins(seq []byte, stem, window int) []Hairpin {
	n := len(seq)
	if stem <= 0 || n < 2*stem {
		return nil
	}
	if window <= 0 || window > n {
		window = n
	}
	var out []Hairpin
	for i := 0; i+stem <= n; i++ {
		end := i + window
		if end > n {
			end = n
		}
		for j := i + stem; j+stem <= end; j++ {
			if stemPairs(seq, i, j, stem) {
				out = append(out, Hairpin{Start: i, Partner: j, Stem: stem})
				break
			}
		}
	}
	return out
}

// stemPairs reports whether seq[i:i+k] is the reverse complement of seq[j:j+k].
func stemPairs(seq []byte, i, j, k int) bool {
	for x := 0; x < k; x++ {
		if !IsWC(seq[i+x], seq[j+k-1-x]) {
			return false
		}
	}
	return true
}
