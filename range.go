// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package norpix

import (
	"fmt"
	"math"
)

// RangeMax is the "to the end" sentinel for frame range requests.
// A request of {RangeMax, RangeMax} selects zero frames, which makes a
// header-only pass over the file.
const RangeMax = math.MaxInt

// FrameRange is a validated, closed interval of 1-based frame indices.
// The zero value is the empty range.
type FrameRange struct {
	First int
	Last  int
}

// Empty reports whether the range selects no frames.
func (r FrameRange) Empty() bool {
	return r.First == 0
}

// Count returns the number of frames the range selects.
func (r FrameRange) Count() int {
	if r.Empty() {
		return 0
	}
	return r.Last - r.First + 1
}

// ResolveFrameRange normalizes a user range request against the number
// of allocated frames. first and last are 1-based and inclusive; zero or
// negative first means "from the first frame", and zero or RangeMax last
// means "to the last frame". Requests entirely past the end resolve to
// the empty range. It is pure arithmetic, independent of any file I/O.
func ResolveFrameRange(allocated, first, last int) (FrameRange, error) {
	if allocated < 0 {
		return FrameRange{}, fmt.Errorf("%w: negative frame count %d", ErrInvalidRange, allocated)
	}
	if last < 0 {
		return FrameRange{}, fmt.Errorf("%w: negative last frame %d", ErrInvalidRange, last)
	}

	lo := first
	if lo < 1 {
		lo = 1
	}
	hi := last
	if hi == 0 || hi > allocated {
		hi = allocated
	}

	// Both bounds past the end selects nothing, rather than clamping
	// down to the final frame.
	if first > allocated && (last == 0 || last > allocated) {
		return FrameRange{}, nil
	}

	if lo > hi {
		return FrameRange{}, nil
	}

	return FrameRange{First: lo, Last: hi}, nil
}
