package compare

// Swing buckets a change in vote rate, in percentage points.
type Swing string

// Swing buckets, strongest gain first.
const (
	SwingSurge    Swing = "surge"
	SwingGain     Swing = "gain"
	SwingStable   Swing = "stable"
	SwingLoss     Swing = "loss"
	SwingCollapse Swing = "collapse"
)

// Bucket lower bounds, inclusive.
const (
	surgeAt  = 5.0
	gainAt   = 2.0
	stableAt = -2.0
	lossAt   = -5.0
)

var swingColors = map[Swing]string{
	SwingSurge:    "#22c55e",
	SwingGain:     "#86efac",
	SwingStable:   "#9ca3af",
	SwingLoss:     "#fca5a5",
	SwingCollapse: "#ef4444",
}

// ClassifySwing maps a rate difference to its bucket.
func ClassifySwing(rateDiff float64) Swing {
	switch {
	case rateDiff >= surgeAt:
		return SwingSurge
	case rateDiff >= gainAt:
		return SwingGain
	case rateDiff >= stableAt:
		return SwingStable
	case rateDiff >= lossAt:
		return SwingLoss
	default:
		return SwingCollapse
	}
}

// SwingColor returns the display colour of a bucket. Unknown buckets get the
// stable grey.
func SwingColor(s Swing) string {
	if c, ok := swingColors[s]; ok {
		return c
	}

	return swingColors[SwingStable]
}

// Label returns a short human label for the bucket.
func (s Swing) Label() string {
	switch s {
	case SwingSurge:
		return "大幅増"
	case SwingGain:
		return "増加"
	case SwingLoss:
		return "減少"
	case SwingCollapse:
		return "大幅減"
	default:
		return "横ばい"
	}
}
