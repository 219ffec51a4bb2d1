// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package norpix

import (
	"fmt"
	"time"
)

// Timestamp formats a frame's raw capture time triple. seconds is an
// offset from 1970-01-01T00:00:00Z interpreted in UTC with no timezone
// conversion; millis and micros are the sub-second fields stored after
// the pixel data. The result has the exact form
// YYYY-MM-DDTHH:MM:SS:mmmuuu with both sub-second fields zero-padded to
// three digits.
func Timestamp(seconds int32, millis, micros uint16) string {
	t := time.Unix(int64(seconds), 0).UTC()
	return fmt.Sprintf("%s:%03d%03d", t.Format("2006-01-02T15:04:05"), millis, micros)
}
