// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

// Package norpix decodes the Norpix SEQ container format: a fixed-layout
// binary header followed by fixed-stride frame records, each holding raw
// pixel samples and a capture timestamp.
package norpix

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// HandleFrameFunc is the function called with each decoded frame, in
// ascending index order. The frame is not retained by the decoder after
// the call returns. Returning ErrStopDecoding stops the iteration
// without an error.
type HandleFrameFunc func(f Frame) error

// Options contains the options for the Decode function.
type Options struct {
	// The Reader (typically a *os.File) to read the SEQ stream from.
	R io.ReadSeeker

	// The function to call for each decoded frame. May be nil for a
	// header-only decode.
	HandleFrame HandleFrameFunc

	// First and Last bound the 1-based inclusive frame range to decode.
	// Zero or negative First means "from the first frame"; zero or
	// RangeMax Last means "through the last frame". A request entirely
	// past the allocated frame count decodes the header only.
	First int
	Last  int

	// Normalize selects the sample scale divisor. The default,
	// NormalizeFixed255, matches the reference readers.
	Normalize NormalizePolicy

	// Warnf will be called for each non-fatal diagnostic, such as an
	// unrecognized image format code.
	Warnf func(string, ...any)

	// Progressf, if set, is called after each decoded frame with the
	// completed fraction of the requested range, in [0, 1].
	Progressf func(float64)

	// Ctx cancels the iteration between frames. Frames already handed
	// to HandleFrame remain valid.
	Ctx context.Context

	// OpenReader, if set together with Concurrency > 1, lets Decode fan
	// frame decoding out across workers. Each worker gets its own
	// reader so no seek cursor is shared. Frames are still delivered to
	// HandleFrame in ascending index order.
	OpenReader func() (io.ReadSeekCloser, error)

	// Concurrency is the number of decode workers when OpenReader is
	// set. Values below 2 decode sequentially.
	Concurrency int
}

// DecodeResult contains the result of a Decode operation.
type DecodeResult struct {
	Header        Header
	Range         FrameRange
	FramesDecoded int
}

// DecodeHeader reads only the header block from r.
func DecodeHeader(r io.ReadSeeker) (Header, error) {
	res, err := Decode(Options{R: r, First: RangeMax, Last: RangeMax})
	return res.Header, err
}

// Decode parses the header, resolves the frame range and streams the
// decoded frames to opts.HandleFrame. A frame record cut short by the
// end of the file terminates the iteration silently; the result reports
// how many frames were decoded.
func Decode(opts Options) (result DecodeResult, err error) {
	if opts.R == nil {
		return result, fmt.Errorf("norpix: no reader provided")
	}
	if opts.HandleFrame == nil {
		opts.HandleFrame = func(Frame) error { return nil }
	}
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}
	if opts.Progressf == nil {
		opts.Progressf = func(float64) {}
	}
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}

	sr := newStreamReader(opts.R)

	if result.Header, err = decodeHeaderRecovering(sr); err != nil {
		return result, err
	}

	if !result.Header.ImageFormat.channelsExact() {
		opts.Warnf("norpix: format %s (code %d) has no exact channel mapping, decoding as 1 channel",
			result.Header.ImageFormat, result.Header.ImageFormatCode)
	}

	result.Range, err = ResolveFrameRange(result.Header.AllocatedFrames, opts.First, opts.Last)
	if err != nil {
		return result, err
	}
	if result.Range.Empty() {
		return result, nil
	}

	if opts.Concurrency > 1 && opts.OpenReader != nil {
		result.FramesDecoded, err = decodeParallel(opts, result.Header, result.Range)
	} else {
		result.FramesDecoded, err = decodeSequential(sr, opts, result.Header, result.Range)
	}
	if errors.Is(err, ErrStopDecoding) {
		err = nil
	}
	return result, err
}

// decodeHeaderRecovering runs decodeHeader inside the panic scope that
// the streamReader's read helpers unwind through, converting a short or
// failed read into ErrMalformedHeader.
func decodeHeaderRecovering(sr *streamReader) (h Header, err error) {
	defer func() {
		if r := recover(); r != nil {
			if r != errStop {
				panic(r)
			}
			err = newMalformedHeaderError(sr.readErr)
		}
	}()
	return decodeHeader(sr)
}

func decodeSequential(sr *streamReader, opts Options, h Header, rng FrameRange) (int, error) {
	limit, err := sr.size()
	if err != nil {
		return 0, fmt.Errorf("norpix: stream size: %w", err)
	}
	total := rng.Count()
	decoded := 0
	for i := rng.First; i <= rng.Last; i++ {
		if err := opts.Ctx.Err(); err != nil {
			return decoded, err
		}
		f, err := decodeFrame(sr, h, i, opts.Normalize, limit)
		if errors.Is(err, errFrameTruncated) {
			// End of usable data, not an error.
			return decoded, nil
		}
		if err != nil {
			return decoded, err
		}
		if err := opts.HandleFrame(f); err != nil {
			return decoded, err
		}
		decoded++
		opts.Progressf(float64(decoded) / float64(total))
	}
	return decoded, nil
}

// frameResult carries one worker's output back to the collector.
type frameResult struct {
	index     int
	frame     Frame
	truncated bool
	err       error
}

// decodeParallel fans frame decoding out over opts.Concurrency workers,
// each with its own reader, and delivers frames to HandleFrame in index
// order. A truncated record at index k suppresses every frame at or
// beyond k, matching the sequential behavior.
func decodeParallel(opts Options, h Header, rng FrameRange) (int, error) {
	ctx, cancel := context.WithCancel(opts.Ctx)
	defer cancel()

	indexc := make(chan int)
	resultc := make(chan frameResult)

	workers := opts.Concurrency
	if n := rng.Count(); workers > n {
		workers = n
	}

	var openErr error
	started := 0
	for w := 0; w < workers; w++ {
		r, err := opts.OpenReader()
		if err != nil {
			openErr = fmt.Errorf("norpix: open reader: %w", err)
			break
		}
		started++
		go func(r io.ReadSeekCloser) {
			defer r.Close()
			sr := newStreamReader(r)
			limit, limitErr := sr.size()
			for i := range indexc {
				var f Frame
				err := limitErr
				if err == nil {
					f, err = decodeFrame(sr, h, i, opts.Normalize, limit)
				}
				res := frameResult{index: i, frame: f}
				if errors.Is(err, errFrameTruncated) {
					res.truncated = true
				} else if err != nil {
					res.err = err
				}
				select {
				case resultc <- res:
				case <-ctx.Done():
					return
				}
			}
		}(r)
	}
	if started == 0 {
		return 0, openErr
	}

	go func() {
		defer close(indexc)
		for i := rng.First; i <= rng.Last; i++ {
			select {
			case indexc <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	total := rng.Count()
	pending := make(map[int]Frame)
	next := rng.First
	decoded := 0
	truncatedAt := rng.Last + 1

	// Emit in index order; stop at the first truncated index even if
	// later frames decoded fine.
	emitReady := func() error {
		for next < truncatedAt {
			f, ok := pending[next]
			if !ok {
				return nil
			}
			delete(pending, next)
			if err := opts.HandleFrame(f); err != nil {
				return err
			}
			decoded++
			opts.Progressf(float64(decoded) / float64(total))
			next++
		}
		return nil
	}

	for received := 0; received < total; received++ {
		var res frameResult
		select {
		case res = <-resultc:
		case <-ctx.Done():
			return decoded, ctx.Err()
		}
		if res.err != nil {
			return decoded, res.err
		}
		if res.truncated {
			if res.index < truncatedAt {
				truncatedAt = res.index
			}
			continue
		}
		if res.index >= truncatedAt {
			continue
		}
		pending[res.index] = res.frame
		if err := emitReady(); err != nil {
			return decoded, err
		}
		if next >= truncatedAt {
			break
		}
	}

	return decoded, nil
}
