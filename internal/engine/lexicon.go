package engine

// Headline sentiment lexicon. Entries are lowercase stems matched as
// substrings, so "beat" covers "beats"/"beating". Weights are summed and
// clamped; the table is the single source for the estimator so tests can
// exercise it independently.
var defaultLexicon = map[string]int{
	// bullish
	"beat":        12,
	"raise":       12,
	"upgrade":     12,
	"outperform":  12,
	"record high": 12,
	"surge":       12,
	"soar":        12,
	"rall":        12, // rally / rallies
	"buyback":     12,
	"approval":    12,
	"approve":     12,
	"partnership": 12,
	"strong":      12,
	"exceed":      12,
	"tops":        12,
	"boost":       12,
	"wins":        12,
	"breakthrough": 12,

	// bearish
	"miss":          -12,
	"cut":           -12,
	"downgrade":     -12,
	"lower":         -12,
	"fall":          -12,
	"fell":          -12,
	"drop":          -12,
	"plunge":        -12,
	"slump":         -12,
	"lawsuit":       -12,
	"probe":         -12,
	"investigation": -12,
	"recall":        -12,
	"warn":          -12,
	"weak":          -12,
	"layoff":        -12,
	"delay":         -12,
	"halt":          -12,
	"decline":       -12,
	"sell-off":      -12,
}

// hedgeWords dampen the sentiment magnitude when present as whole words
var hedgeWords = map[string]struct{}{
	"but":     {},
	"despite": {},
	"however": {},
}

// catalystWords mark earnings-adjacent headlines worth a small bonus
var catalystWords = []string{
	"earnings",
	"guidance",
	"eps",
	"outlook",
	"forecast",
}
