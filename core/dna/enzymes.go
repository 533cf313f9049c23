// core/dna/enzymes.go
package dna

import "strings"

// Recognition sites for the enzymes exposed in the design UI.
var enzymeSites = map[string]string{
	"BSAI":  "GGTCTC",
	"BSMBI": "CGTCTC",
	"BBSI":  "GAAGAC",
	"SAPI":  "GCTCTTC",
	"ECORI": "GAATTC",
	"BAMHI": "GGATCC",
	"XHOI":  "CTCGAG",
	"NDEI":  "CATATG",
	"NOTI":  "GCGGCCGC",
	"XBAI":  "TCTAGA",
}

// LookupEnzymeSite resolves "EcoRI" or "EcoRI_site" (case-insensitive).
func LookupEnzymeSite(name string) (string, bool) {
	key := strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(name), "_site"))
	key = strings.TrimSuffix(key, "_SITE")
	site, ok := enzymeSites[key]
	return site, ok
}
