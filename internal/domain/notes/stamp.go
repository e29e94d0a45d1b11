package notes

import (
	"fmt"
	"regexp"
	"time"
)

// stampLayout is the only accepted shape for manual timestamp edits.
const stampLayout = "2006-01-02 15:04:05"

var stampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

// ParseStampText parses a manually edited timestamp. The text must
// match YYYY-MM-DD HH:MM:SS and denote a real instant; out-of-range
// fields fail rather than wrap.
func ParseStampText(text string) (int64, bool) {
	if !stampPattern.MatchString(text) {
		return 0, false
	}
	t, err := time.ParseInLocation(stampLayout, text, time.Local)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}

// FormatStampText renders a timestamp in the editable absolute form.
func FormatStampText(ms int64) string {
	return time.UnixMilli(ms).Format(stampLayout)
}

// FormatStamp renders a timestamp for display: wall-clock time in Live
// mode, offset from the anchor in Loaded mode.
func FormatStamp(ms int64, mode Mode, anchorMs int64) string {
	if mode == ModeLive {
		return time.UnixMilli(ms).Format("15:04:05")
	}
	return FormatOffset(ms - anchorMs)
}

// FormatOffset renders a millisecond offset as +mm:ss (or +h:mm:ss past
// an hour). Negative offsets render with a leading minus.
func FormatOffset(ms int64) string {
	sign := "+"
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	total := ms / 1000
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, m, s)
}
