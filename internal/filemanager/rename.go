package filemanager

import (
	"strconv"
	"strings"
	"time"
)

// EvaluateRenamePattern applies spec.md 4.F's small template language to a
// source filename: `$0` is the original name, `$I` the per-operation
// monotonic counter, and `$Y`/`$M`/`$D`/`$h`/`$m`/`$s` are the file's
// modification-time year/month/day/hour/minute/second. Everything else is
// literal.
func EvaluateRenamePattern(pattern, originalName string, counter int, modTime time.Time) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '$' || i+1 >= len(pattern) {
			b.WriteByte(c)
			continue
		}
		switch pattern[i+1] {
		case '0':
			b.WriteString(originalName)
			i++
		case 'I':
			b.WriteString(strconv.Itoa(counter))
			i++
		case 'Y':
			b.WriteString(modTime.Format("2006"))
			i++
		case 'M':
			b.WriteString(modTime.Format("01"))
			i++
		case 'D':
			b.WriteString(modTime.Format("02"))
			i++
		case 'h':
			b.WriteString(modTime.Format("15"))
			i++
		case 'm':
			b.WriteString(modTime.Format("04"))
			i++
		case 's':
			b.WriteString(modTime.Format("05"))
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
