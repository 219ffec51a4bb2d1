// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package norpix

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// Fixed byte offsets of the header fields. The frame data region starts
// at headerRegionSize regardless of the headerSize field.
const (
	offsetVersion           = 28
	offsetHeaderSize        = 32
	offsetDescription       = 36
	offsetImageWidth        = 548
	offsetImageHeight       = 552
	offsetImageBitDepth     = 556
	offsetImageBitDepthReal = 560
	offsetImageSizeBytes    = 564
	offsetImageFormat       = 568
	offsetAllocatedFrames   = 572
	offsetOrigin            = 576
	offsetTrueImageSize     = 580
	offsetFrameRate         = 584
	offsetDescriptionFormat = 592

	descriptionCodeUnits = 512

	headerRegionSize = 8192
)

// Upper bounds on the declared geometry. Anything beyond these is a
// corrupt header rather than a real capture.
const (
	maxDimension  = 1 << 20
	maxFrameBytes = 1 << 30
)

// Description encodings selected by the descriptionFormat field.
const (
	descriptionFormatUnicode = 0
	descriptionFormatASCII   = 1
)

// Header is the fixed-offset metadata block at the start of a SEQ file.
// It is parsed once and read-only thereafter.
type Header struct {
	Version           int32
	HeaderSize        int32
	Description       string
	DescriptionFormat int32
	Width             int
	Height            int
	BitDepth          int
	BitDepthReal      int
	ImageSizeBytes    int
	ImageFormat       ImageFormat
	ImageFormatCode   uint32
	AllocatedFrames   int
	Origin            int
	TrueImageSize     int
	FrameRate         float64
}

// SampleBytes returns the storage width of one sample channel, derived
// from the real bit depth: 8 bits are stored in one byte, 12/14/16 bits
// in two.
func (h Header) SampleBytes() int {
	if h.BitDepthReal == 8 {
		return 1
	}
	return 2
}

// Channels returns the per-pixel channel count for the header's format.
func (h Header) Channels() int {
	return h.ImageFormat.Channels()
}

// frameBytes is the size of one frame's pixel block, excluding the
// trailing timestamp.
func (h Header) frameBytes() int {
	return h.Width * h.Height * h.Channels() * h.SampleBytes()
}

// frameOffset returns the absolute byte offset of the 1-based frame i.
func (h Header) frameOffset(i int) int64 {
	return headerRegionSize + int64(i-1)*int64(h.TrueImageSize)
}

// decodeHeader reads the header fields at their fixed offsets. It is
// invoked inside the panic-recovery scope set up by Decode; short reads
// unwind through sr.stop and are mapped to ErrMalformedHeader there.
func decodeHeader(sr *streamReader) (Header, error) {
	var h Header

	sr.seek(offsetVersion)
	h.Version = sr.read4s()
	h.HeaderSize = sr.read4s()

	sr.seek(offsetDescription)
	rawDescription := make([]byte, descriptionCodeUnits*2)
	copy(rawDescription, sr.readBytesVolatile(len(rawDescription)))

	sr.seek(offsetImageWidth)
	h.Width = int(sr.read4())
	h.Height = int(sr.read4())
	h.BitDepth = int(sr.read4())
	h.BitDepthReal = int(sr.read4())
	h.ImageSizeBytes = int(sr.read4())
	h.ImageFormatCode = sr.read4()
	h.AllocatedFrames = int(sr.read2())

	sr.seek(offsetOrigin)
	h.Origin = int(sr.read2())

	sr.seek(offsetTrueImageSize)
	h.TrueImageSize = int(sr.read4())
	h.FrameRate = sr.read8f()

	sr.seek(offsetDescriptionFormat)
	h.DescriptionFormat = sr.read4s()
	h.Description = decodeDescription(rawDescription, h.DescriptionFormat)

	switch h.BitDepthReal {
	case 8, 12, 14, 16:
	default:
		return Header{}, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedBitDepth, h.BitDepthReal)
	}

	h.ImageFormat, _ = resolveImageFormat(h.ImageFormatCode)

	if h.Width < 1 || h.Height < 1 || h.Width > maxDimension || h.Height > maxDimension {
		return Header{}, fmt.Errorf("%w: implausible image geometry %dx%d", ErrMalformedHeader, h.Width, h.Height)
	}
	if int64(h.Width)*int64(h.Height)*int64(h.Channels())*int64(h.SampleBytes()) > maxFrameBytes {
		return Header{}, fmt.Errorf("%w: frame size exceeds %d bytes", ErrMalformedHeader, int64(maxFrameBytes))
	}

	return h, nil
}

// decodeDescription decodes the 512 raw 16-bit code units of the
// description field. Format 0 stores UTF-16LE text; any other value
// stores one ASCII byte per code unit.
func decodeDescription(raw []byte, format int32) string {
	var s string
	if format == descriptionFormatUnicode {
		// Decoders are stateful, so build one per call.
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		decoded, err := dec.Bytes(raw)
		if err != nil {
			return ""
		}
		s = string(decoded)
	} else {
		b := make([]byte, 0, len(raw)/2)
		for i := 0; i+1 < len(raw); i += 2 {
			b = append(b, raw[i])
		}
		s = string(b)
	}
	// The field is null-padded to its full width.
	for i, r := range s {
		if r == 0 {
			return s[:i]
		}
	}
	return s
}
