// Package universe defines which symbols the scanner covers.
package universe

import "strings"

// defaultSymbols is the built-in large-cap coverage set, used when
// SCAN_SYMBOLS is not configured.
var defaultSymbols = []string{
	"AAPL", "MSFT", "NVDA", "GOOGL", "AMZN", "META", "TSLA", "AVGO",
	"AMD", "NFLX", "ADBE", "CRM", "ORCL", "INTC", "QCOM", "TXN",
	"CSCO", "MU", "AMAT", "LRCX", "PANW", "NOW", "UBER", "SHOP",
	"COST", "PEP", "SBUX", "ABNB", "PYPL", "COIN",
}

// Universe is the resolved symbol list for a scan pass
type Universe struct {
	symbols []string
}

// New resolves the universe: configured symbols win, the default set
// otherwise. Symbols are upper-cased and deduplicated, order preserved.
func New(configured []string) *Universe {
	src := configured
	if len(src) == 0 {
		src = defaultSymbols
	}

	seen := make(map[string]struct{}, len(src))
	symbols := make([]string, 0, len(src))
	for _, s := range src {
		sym := strings.ToUpper(strings.TrimSpace(s))
		if sym == "" {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		symbols = append(symbols, sym)
	}

	return &Universe{symbols: symbols}
}

// Symbols returns a copy of the symbol list
func (u *Universe) Symbols() []string {
	out := make([]string, len(u.symbols))
	copy(out, u.symbols)
	return out
}

// Size returns the number of symbols
func (u *Universe) Size() int {
	return len(u.symbols)
}

// Contains reports whether the symbol is in the universe
func (u *Universe) Contains(symbol string) bool {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	for _, s := range u.symbols {
		if s == sym {
			return true
		}
	}
	return false
}
