// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package norpix

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader is returned when required header bytes are
	// missing or unreadable. No partial Header is returned with it.
	ErrMalformedHeader = errors.New("norpix: malformed header")

	// ErrUnsupportedBitDepth is returned when the header declares a real
	// bit depth outside {8, 12, 14, 16}.
	ErrUnsupportedBitDepth = errors.New("norpix: unsupported bit depth")

	// ErrInvalidRange is returned when a frame range request cannot be
	// normalized.
	ErrInvalidRange = errors.New("norpix: invalid frame range")

	// ErrStopDecoding is a sentinel error the HandleFrame callback can
	// return to stop the iteration early without reporting an error.
	ErrStopDecoding = errors.New("stop decoding")

	// Internal sentinel used by streamReader to unwind on read failures.
	errStop = errors.New("stop")

	// A frame record with fewer bytes than declared. Treated as normal
	// end of stream, never surfaced to the caller.
	errFrameTruncated = errors.New("frame truncated")
)

// IsMalformedHeader reports whether err was caused by a short or
// unreadable header.
func IsMalformedHeader(err error) bool {
	return errors.Is(err, ErrMalformedHeader)
}

// IsUnsupportedBitDepth reports whether err was caused by a real bit
// depth this package cannot decode.
func IsUnsupportedBitDepth(err error) bool {
	return errors.Is(err, ErrUnsupportedBitDepth)
}

// IsInvalidRange reports whether err was caused by an unusable frame
// range request.
func IsInvalidRange(err error) bool {
	return errors.Is(err, ErrInvalidRange)
}

func newMalformedHeaderError(err error) error {
	if err == nil {
		return ErrMalformedHeader
	}
	return fmt.Errorf("%w: %s", ErrMalformedHeader, err)
}
