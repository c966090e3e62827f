package quantization

// Symbol is the 2-bit class of a single bucket relative to the quartiles.
type Symbol uint8

const (
	SymbolLow Symbol = iota
	SymbolMidLow
	SymbolMidHigh
	SymbolHigh
)

// String returns the string representation of the symbol.
func (s Symbol) String() string {
	switch s {
	case SymbolLow:
		return "Low"
	case SymbolMidLow:
		return "MidLow"
	case SymbolMidHigh:
		return "MidHigh"
	case SymbolHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Classify returns the symbol of count for the given quartiles.
func Classify(count, q1, q2, q3 uint32) Symbol {
	switch {
	case count > q3:
		return SymbolHigh
	case count > q2:
		return SymbolMidHigh
	case count > q1:
		return SymbolMidLow
	default:
		return SymbolLow
	}
}
