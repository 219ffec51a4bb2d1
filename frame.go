// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package norpix

import (
	"encoding/binary"
	"fmt"
)

// NormalizePolicy selects the divisor used to scale raw samples into
// [0, 1]. See Options.Normalize.
type NormalizePolicy int

const (
	// NormalizeFixed255 divides every sample by 255 regardless of bit
	// depth. This matches the reference Norpix readers, which leaves
	// 12/14/16-bit data above 1.0 in the nominal buffer; it is the
	// default for compatibility.
	NormalizeFixed255 NormalizePolicy = iota
	// NormalizeBitDepth divides by 2^bitDepthReal − 1, so full scale is
	// exactly 1.0 at any depth.
	NormalizeBitDepth
)

func (p NormalizePolicy) String() string {
	switch p {
	case NormalizeFixed255:
		return "Fixed255"
	case NormalizeBitDepth:
		return "BitDepth"
	default:
		return fmt.Sprintf("NormalizePolicy(%d)", int(p))
	}
}

// divisor returns the scale divisor for the given real bit depth.
func (p NormalizePolicy) divisor(bitDepthReal int) float64 {
	if p == NormalizeBitDepth {
		return float64(uint(1)<<uint(bitDepthReal) - 1)
	}
	return 255
}

// Frame is one decoded frame record: a row-major pixel buffer plus the
// capture timestamp stored after the pixel data. Frames are created on
// demand during iteration and not retained by the decoder.
type Frame struct {
	// Index is the 1-based frame index within the file.
	Index int

	Width    int
	Height   int
	Channels int

	// Pix holds Width × Height × Channels samples in row-major
	// [row][col][channel] order, scaled per the normalization policy.
	Pix []float64

	// Timestamp is the decoded capture instant, see Timestamp.
	Timestamp string
}

// At returns the sample at the given row, column and channel.
func (f Frame) At(row, col, ch int) float64 {
	return f.Pix[(row*f.Width+col)*f.Channels+ch]
}

// decodeFrame reads and decodes the 1-based frame i. limit is the total
// stream size; a record with fewer bytes than frameBytes plus the 8-byte
// timestamp is reported as errFrameTruncated, which the iteration treats
// as end of stream.
func decodeFrame(sr *streamReader, h Header, i int, policy NormalizePolicy, limit int64) (Frame, error) {
	need := int64(h.frameBytes()) + 8
	if h.frameOffset(i)+need > limit {
		return Frame{}, fmt.Errorf("%w: frame %d past end of stream", errFrameTruncated, i)
	}
	if err := sr.seekE(h.frameOffset(i)); err != nil {
		return Frame{}, fmt.Errorf("%w: seek frame %d: %s", errFrameTruncated, i, err)
	}

	// One frame record: pixel block followed by the timestamp triple.
	record := make([]byte, need)
	if err := sr.readFullE(record); err != nil {
		return Frame{}, fmt.Errorf("%w: frame %d: %s", errFrameTruncated, i, err)
	}

	raw := record[:h.frameBytes()]
	ts := record[h.frameBytes():]

	seconds := int32(sr.byteOrder.Uint32(ts[0:4]))
	millis := sr.byteOrder.Uint16(ts[4:6])
	micros := sr.byteOrder.Uint16(ts[6:8])

	f := Frame{
		Index:     i,
		Width:     h.Width,
		Height:    h.Height,
		Channels:  h.Channels(),
		Timestamp: Timestamp(seconds, millis, micros),
	}
	f.Pix = reshapeSamples(raw, h)

	switch h.ImageFormat {
	case ImageFormatBGR:
		swapBGR(f.Pix)
	case ImageFormatRawBayer:
		f.Pix = demosaicGBRG(f.Pix, f.Width, f.Height)
		f.Channels = 3
	}

	div := policy.divisor(h.BitDepthReal)
	for j := range f.Pix {
		f.Pix[j] /= div
	}

	return f, nil
}

// reshapeSamples converts the raw sample block into row-major
// [row][col][channel] order. On disk the samples are stored
// channel-major then column-major, so the grid is transposed here.
func reshapeSamples(raw []byte, h Header) []float64 {
	w, ht, c := h.Width, h.Height, h.Channels()
	sw := h.SampleBytes()

	pix := make([]float64, w*ht*c)
	for ch := 0; ch < c; ch++ {
		for col := 0; col < w; col++ {
			for row := 0; row < ht; row++ {
				src := (ch*w*ht + col*ht + row) * sw
				var v float64
				if sw == 1 {
					v = float64(raw[src])
				} else {
					v = float64(binary.LittleEndian.Uint16(raw[src : src+2]))
				}
				pix[(row*w+col)*c+ch] = v
			}
		}
	}
	return pix
}

// swapBGR reorders interleaved 3-channel samples from BGR to RGB.
func swapBGR(pix []float64) {
	for i := 0; i+2 < len(pix); i += 3 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

// demosaicGBRG reconstructs a 3-channel RGB image from a single-channel
// GBRG mosaic using bilinear interpolation. The filter layout is
//
//	G B G B ...
//	R G R G ...
//
// with even rows carrying green/blue and odd rows red/green. Missing
// channels at each site are averaged from the in-bounds neighbors that
// carry them.
func demosaicGBRG(mono []float64, w, h int) []float64 {
	at := func(row, col int) float64 { return mono[row*w+col] }

	// avg averages the mosaic values at the in-bounds (row, col) pairs.
	avg := func(coords ...[2]int) float64 {
		var sum float64
		var n int
		for _, rc := range coords {
			if rc[0] < 0 || rc[0] >= h || rc[1] < 0 || rc[1] >= w {
				continue
			}
			sum += at(rc[0], rc[1])
			n++
		}
		if n == 0 {
			return 0
		}
		return sum / float64(n)
	}

	rgb := make([]float64, w*h*3)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			var r, g, b float64
			switch {
			case row%2 == 0 && col%2 == 0: // green on a blue row
				g = at(row, col)
				b = avg([2]int{row, col - 1}, [2]int{row, col + 1})
				r = avg([2]int{row - 1, col}, [2]int{row + 1, col})
			case row%2 == 0: // blue
				b = at(row, col)
				g = avg([2]int{row, col - 1}, [2]int{row, col + 1},
					[2]int{row - 1, col}, [2]int{row + 1, col})
				r = avg([2]int{row - 1, col - 1}, [2]int{row - 1, col + 1},
					[2]int{row + 1, col - 1}, [2]int{row + 1, col + 1})
			case col%2 == 0: // red
				r = at(row, col)
				g = avg([2]int{row, col - 1}, [2]int{row, col + 1},
					[2]int{row - 1, col}, [2]int{row + 1, col})
				b = avg([2]int{row - 1, col - 1}, [2]int{row - 1, col + 1},
					[2]int{row + 1, col - 1}, [2]int{row + 1, col + 1})
			default: // green on a red row
				g = at(row, col)
				r = avg([2]int{row, col - 1}, [2]int{row, col + 1})
				b = avg([2]int{row - 1, col}, [2]int{row + 1, col})
			}
			o := (row*w + col) * 3
			rgb[o], rgb[o+1], rgb[o+2] = r, g, b
		}
	}
	return rgb
}
