package session

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as "X phút Y giây".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int(d / time.Second)
	return fmt.Sprintf("%d phút %d giây", seconds/60, seconds%60)
}
