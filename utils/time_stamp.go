package utils

import (
	"fmt"
	"time"
)

// SessionName returns a unique diagnostics session directory name:
//
//	<prefix>_YYYYMMDD_HHMMSS
func SessionName(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, time.Now().Format("20060102_150405"))
}
