// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package norpix

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestImageFormatResolve(t *testing.T) {
	c := qt.New(t)

	for code, want := range formatCodes {
		f, ok := resolveImageFormat(code)
		c.Assert(ok, qt.IsTrue)
		c.Assert(f, qt.Equals, want)
	}

	f, ok := resolveImageFormat(12345)
	c.Assert(ok, qt.IsFalse)
	c.Assert(f, qt.Equals, ImageFormatUnknown)
}

func TestImageFormatChannels(t *testing.T) {
	c := qt.New(t)

	c.Assert(ImageFormatRGB.Channels(), qt.Equals, 3)
	c.Assert(ImageFormatBGR.Channels(), qt.Equals, 3)
	c.Assert(ImageFormatMonochrome.Channels(), qt.Equals, 1)
	c.Assert(ImageFormatRawBayer.Channels(), qt.Equals, 1)
	// Best-effort single-channel default for everything else.
	c.Assert(ImageFormatYUV422.Channels(), qt.Equals, 1)
	c.Assert(ImageFormatUnknown.Channels(), qt.Equals, 1)

	c.Assert(ImageFormatMonochrome.channelsExact(), qt.IsTrue)
	c.Assert(ImageFormatPlanar.channelsExact(), qt.IsFalse)
	c.Assert(ImageFormatUnknown.channelsExact(), qt.IsFalse)
}

func TestStringer(t *testing.T) {
	c := qt.New(t)

	c.Assert(ImageFormatMonochrome.String(), qt.Equals, "Monochrome")
	c.Assert(ImageFormatRawBayer.String(), qt.Equals, "RawBayer")
	c.Assert(ImageFormatUVY444.String(), qt.Equals, "UVY444")
	c.Assert(ImageFormat(42).String(), qt.Equals, "ImageFormat(42)")

	c.Assert(NormalizeFixed255.String(), qt.Equals, "Fixed255")
	c.Assert(NormalizeBitDepth.String(), qt.Equals, "BitDepth")
	c.Assert(NormalizePolicy(9).String(), qt.Equals, "NormalizePolicy(9)")
}
