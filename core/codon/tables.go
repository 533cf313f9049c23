// core/codon/tables.go
package codon

// Relative codon usage (fraction among synonymous codons), Kazusa.
func init() {
	register("e_coli", map[string]float64{
		"GCA": 0.21, "GCC": 0.27, "GCG": 0.36, "GCT": 0.16,
		"AGA": 0.04, "AGG": 0.02, "CGA": 0.06, "CGC": 0.40, "CGG": 0.10, "CGT": 0.38,
		"AAC": 0.55, "AAT": 0.45,
		"GAC": 0.37, "GAT": 0.63,
		"TGC": 0.56, "TGT": 0.44,
		"CAA": 0.35, "CAG": 0.65,
		"GAA": 0.69, "GAG": 0.31,
		"GGA": 0.11, "GGC": 0.40, "GGG": 0.15, "GGT": 0.34,
		"CAC": 0.43, "CAT": 0.57,
		"ATA": 0.07, "ATC": 0.42, "ATT": 0.51,
		"CTA": 0.04, "CTC": 0.10, "CTG": 0.50, "CTT": 0.10, "TTA": 0.13, "TTG": 0.13,
		"AAA": 0.76, "AAG": 0.24,
		"ATG": 1.00,
		"TTC": 0.43, "TTT": 0.57,
		"CCA": 0.19, "CCC": 0.12, "CCG": 0.53, "CCT": 0.16,
		"AGC": 0.28, "AGT": 0.15, "TCA": 0.12, "TCC": 0.15, "TCG": 0.15, "TCT": 0.15,
		"ACA": 0.13, "ACC": 0.44, "ACG": 0.27, "ACT": 0.16,
		"TGG": 1.00,
		"TAC": 0.43, "TAT": 0.57,
		"GTA": 0.15, "GTC": 0.22, "GTG": 0.37, "GTT": 0.26,
		"TAA": 0.64, "TAG": 0.07, "TGA": 0.29,
	})
	register("h_sapiens", map[string]float64{
		"GCA": 0.23, "GCC": 0.40, "GCG": 0.11, "GCT": 0.26,
		"AGA": 0.20, "AGG": 0.20, "CGA": 0.11, "CGC": 0.19, "CGG": 0.21, "CGT": 0.08,
		"AAC": 0.54, "AAT": 0.46,
		"GAC": 0.54, "GAT": 0.46,
		"TGC": 0.55, "TGT": 0.45,
		"CAA": 0.25, "CAG": 0.75,
		"GAA": 0.42, "GAG": 0.58,
		"GGA": 0.25, "GGC": 0.34, "GGG": 0.25, "GGT": 0.16,
		"CAC": 0.59, "CAT": 0.41,
		"ATA": 0.16, "ATC": 0.48, "ATT": 0.36,
		"CTA": 0.07, "CTC": 0.20, "CTG": 0.41, "CTT": 0.13, "TTA": 0.07, "TTG": 0.13,
		"AAA": 0.42, "AAG": 0.58,
		"ATG": 1.00,
		"TTC": 0.55, "TTT": 0.45,
		"CCA": 0.27, "CCC": 0.33, "CCG": 0.11, "CCT": 0.28,
		"AGC": 0.24, "AGT": 0.15, "TCA": 0.15, "TCC": 0.22, "TCG": 0.06, "TCT": 0.18,
		"ACA": 0.28, "ACC": 0.36, "ACG": 0.12, "ACT": 0.24,
		"TGG": 1.00,
		"TAC": 0.57, "TAT": 0.43,
		"GTA": 0.11, "GTC": 0.24, "GTG": 0.47, "GTT": 0.18,
		"TAA": 0.28, "TAG": 0.20, "TGA": 0.52,
	})
	register("s_cerevisiae", map[string]float64{
		"GCA": 0.29, "GCC": 0.22, "GCG": 0.11, "GCT": 0.38,
		"AGA": 0.48, "AGG": 0.21, "CGA": 0.07, "CGC": 0.06, "CGG": 0.04, "CGT": 0.14,
		"AAC": 0.41, "AAT": 0.59,
		"GAC": 0.35, "GAT": 0.65,
		"TGC": 0.37, "TGT": 0.63,
		"CAA": 0.69, "CAG": 0.31,
		"GAA": 0.70, "GAG": 0.30,
		"GGA": 0.22, "GGC": 0.19, "GGG": 0.12, "GGT": 0.47,
		"CAC": 0.36, "CAT": 0.64,
		"ATA": 0.27, "ATC": 0.26, "ATT": 0.46,
		"CTA": 0.14, "CTC": 0.06, "CTG": 0.11, "CTT": 0.13, "TTA": 0.28, "TTG": 0.29,
		"AAA": 0.58, "AAG": 0.42,
		"ATG": 1.00,
		"TTC": 0.41, "TTT": 0.59,
		"CCA": 0.42, "CCC": 0.15, "CCG": 0.12, "CCT": 0.31,
		"AGC": 0.11, "AGT": 0.16, "TCA": 0.21, "TCC": 0.16, "TCG": 0.10, "TCT": 0.26,
		"ACA": 0.30, "ACC": 0.22, "ACG": 0.14, "ACT": 0.35,
		"TGG": 1.00,
		"TAC": 0.44, "TAT": 0.56,
		"GTA": 0.21, "GTC": 0.21, "GTG": 0.19, "GTT": 0.39,
		"TAA": 0.47, "TAG": 0.23, "TGA": 0.30,
	})
}
