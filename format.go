// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package norpix

import "fmt"

// ImageFormat is the pixel storage format declared in a SEQ header.
type ImageFormat int

const (
	// ImageFormatUnknown covers format code 0 and any code outside the
	// documented set. Frames are decoded as a single channel.
	ImageFormatUnknown ImageFormat = iota
	// ImageFormatMonochrome is single-channel grayscale.
	ImageFormatMonochrome
	// ImageFormatRawBayer is a single-channel GBRG sensor mosaic,
	// demosaiced to RGB during decode.
	ImageFormatRawBayer
	// ImageFormatBGR is 3-channel BGR, reordered to RGB during decode.
	ImageFormatBGR
	// ImageFormatPlanar is planar storage.
	ImageFormatPlanar
	// ImageFormatRGB is 3-channel RGB.
	ImageFormatRGB
	// ImageFormatBGRx is BGR with a padding byte.
	ImageFormatBGRx
	// ImageFormatYUV422 is packed YUV 4:2:2.
	ImageFormatYUV422
	// ImageFormatUVY422 is packed UVY 4:2:2.
	ImageFormatUVY422
	// ImageFormatUVY411 is packed UVY 4:1:1.
	ImageFormatUVY411
	// ImageFormatUVY444 is packed UVY 4:4:4.
	ImageFormatUVY444
)

// formatCodes maps the numeric codes stored at header offset 568 to
// their formats, in the order Norpix documents them.
var formatCodes = map[uint32]ImageFormat{
	0:   ImageFormatUnknown,
	100: ImageFormatMonochrome,
	101: ImageFormatRawBayer,
	200: ImageFormatBGR,
	300: ImageFormatPlanar,
	400: ImageFormatRGB,
	500: ImageFormatBGRx,
	600: ImageFormatYUV422,
	700: ImageFormatUVY422,
	800: ImageFormatUVY411,
	900: ImageFormatUVY444,
}

// resolveImageFormat maps a raw header code to an ImageFormat.
// The second return value is false for codes outside the documented set;
// such codes resolve to ImageFormatUnknown rather than failing, so files
// written by newer Norpix software remain readable.
func resolveImageFormat(code uint32) (ImageFormat, bool) {
	f, ok := formatCodes[code]
	if !ok {
		return ImageFormatUnknown, false
	}
	return f, true
}

// Channels returns the number of interleaved sample channels stored per
// pixel. Only RGB and BGR are truly 3-channel; Monochrome and RawBayer
// are truly 1-channel. Every other format is decoded as a single channel
// as a best-effort default; callers are notified via Options.Warnf.
func (f ImageFormat) Channels() int {
	switch f {
	case ImageFormatRGB, ImageFormatBGR:
		return 3
	default:
		return 1
	}
}

// channelsExact reports whether Channels is the format's true channel
// count rather than the single-channel fallback.
func (f ImageFormat) channelsExact() bool {
	switch f {
	case ImageFormatRGB, ImageFormatBGR, ImageFormatMonochrome, ImageFormatRawBayer:
		return true
	default:
		return false
	}
}

func (f ImageFormat) String() string {
	switch f {
	case ImageFormatUnknown:
		return "Unknown"
	case ImageFormatMonochrome:
		return "Monochrome"
	case ImageFormatRawBayer:
		return "RawBayer"
	case ImageFormatBGR:
		return "BGR"
	case ImageFormatPlanar:
		return "Planar"
	case ImageFormatRGB:
		return "RGB"
	case ImageFormatBGRx:
		return "BGRx"
	case ImageFormatYUV422:
		return "YUV422"
	case ImageFormatUVY422:
		return "UVY422"
	case ImageFormatUVY411:
		return "UVY411"
	case ImageFormatUVY444:
		return "UVY444"
	default:
		return fmt.Sprintf("ImageFormat(%d)", int(f))
	}
}
