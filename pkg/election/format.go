package election

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatPercent renders v with the given number of decimals and a trailing %.
func FormatPercent(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64) + "%"
}

// FormatVotes renders a vote count with comma grouping.
func FormatVotes(n int) string {
	return humanize.Comma(int64(n))
}
