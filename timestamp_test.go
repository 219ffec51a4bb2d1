// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package norpix_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/seqvision/norpix"
)

func TestTimestamp(t *testing.T) {
	c := qt.New(t)

	c.Assert(norpix.Timestamp(0, 0, 0), qt.Equals, "1970-01-01T00:00:00:000000")
	c.Assert(norpix.Timestamp(1234567890, 7, 89), qt.Equals, "2009-02-13T23:31:30:007089")
	c.Assert(norpix.Timestamp(86399, 999, 999), qt.Equals, "1970-01-01T23:59:59:999999")
	// Interpreted in UTC with no timezone conversion.
	c.Assert(norpix.Timestamp(1, 0, 0), qt.Equals, "1970-01-01T00:00:01:000000")
}
