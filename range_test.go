// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package norpix_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/seqvision/norpix"
)

func TestResolveFrameRange(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name        string
		allocated   int
		first, last int
		want        norpix.FrameRange
	}{
		{"no request", 500, 0, 0, norpix.FrameRange{First: 1, Last: 500}},
		{"open end", 500, 100, norpix.RangeMax, norpix.FrameRange{First: 100, Last: 500}},
		{"closed", 500, 1, 100, norpix.FrameRange{First: 1, Last: 100}},
		{"open start", 500, -10, 100, norpix.FrameRange{First: 1, Last: 100}},
		{"past the end", 500, norpix.RangeMax, norpix.RangeMax, norpix.FrameRange{}},
		{"start past end", 500, 600, 0, norpix.FrameRange{}},
		{"inverted", 500, 200, 100, norpix.FrameRange{}},
		{"single", 500, 3, 3, norpix.FrameRange{First: 3, Last: 3}},
		{"clamp end", 500, 490, 1000, norpix.FrameRange{First: 490, Last: 500}},
		{"no frames", 0, 0, 0, norpix.FrameRange{}},
		{"no frames with request", 0, 1, 10, norpix.FrameRange{}},
	}

	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			got, err := norpix.ResolveFrameRange(tt.allocated, tt.first, tt.last)
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, tt.want)
		})
	}

	c.Run("negative last", func(c *qt.C) {
		_, err := norpix.ResolveFrameRange(500, 1, -1)
		c.Assert(norpix.IsInvalidRange(err), qt.IsTrue)
	})

	c.Run("count", func(c *qt.C) {
		r, err := norpix.ResolveFrameRange(500, 100, 0)
		c.Assert(err, qt.IsNil)
		c.Assert(r.Count(), qt.Equals, 401)
		c.Assert(norpix.FrameRange{}.Count(), qt.Equals, 0)
		c.Assert(norpix.FrameRange{}.Empty(), qt.IsTrue)
	})
}
