package components

// Dashboard palette. Widgets pass these into the primitives; keeping the
// hex values in one block keeps the tiles consistent.
const (
	ColorBorder      = "#6B7280"
	ColorBorderFocus = "#7C3AED"
	ColorAccent      = "#A78BFA"
	ColorDim         = "#9CA3AF"
	ColorError       = "#EF4444"

	// Utilisation thresholds and series colors.
	ColorGood = "#4CAF50"
	ColorWarn = "#FF9800"
	ColorCrit = "#F44336"
	ColorInfo = "#64B5F6"
)
