package rules

import (
	"fmt"
	"strings"
	"time"
)

// FormatTime renders t using a token layout. The first occurrence of each of
// YYYY, MM, DD, HH, mm and ss is replaced by the zero-padded value.
func FormatTime(layout string, t time.Time) string {
	out := layout
	out = strings.Replace(out, "YYYY", fmt.Sprintf("%04d", t.Year()), 1)
	out = strings.Replace(out, "MM", fmt.Sprintf("%02d", int(t.Month())), 1)
	out = strings.Replace(out, "DD", fmt.Sprintf("%02d", t.Day()), 1)
	out = strings.Replace(out, "HH", fmt.Sprintf("%02d", t.Hour()), 1)
	out = strings.Replace(out, "mm", fmt.Sprintf("%02d", t.Minute()), 1)
	out = strings.Replace(out, "ss", fmt.Sprintf("%02d", t.Second()), 1)
	return out
}
