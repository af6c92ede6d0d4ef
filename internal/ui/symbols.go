package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Host or phase completed successfully
	SymbolFail     = "✗" // Host or phase failed
	SymbolComplete = "●" // Done (alternative to success)
	SymbolSkipped  = "⊘" // Skipped
	SymbolArrow    = "→" // Script starting
)
