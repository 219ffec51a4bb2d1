// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package seqimg_test

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/seqvision/norpix"
	"github.com/seqvision/norpix/seqimg"
)

func grayFrame() norpix.Frame {
	return norpix.Frame{
		Index:    1,
		Width:    2,
		Height:   2,
		Channels: 1,
		Pix:      []float64{0, 0.25, 0.5, 1},
	}
}

func rgbFrame() norpix.Frame {
	return norpix.Frame{
		Index:    1,
		Width:    1,
		Height:   1,
		Channels: 3,
		Pix:      []float64{1, 0.5, 0},
	}
}

func TestToImageGray(t *testing.T) {
	c := qt.New(t)

	img := seqimg.ToImage(grayFrame())
	gray, ok := img.(*image.Gray16)
	c.Assert(ok, qt.IsTrue)
	c.Assert(gray.Bounds().Dx(), qt.Equals, 2)
	c.Assert(gray.Bounds().Dy(), qt.Equals, 2)
	c.Assert(gray.Gray16At(0, 0).Y, qt.Equals, uint16(0))
	c.Assert(gray.Gray16At(1, 1).Y, qt.Equals, uint16(0xffff))
	c.Assert(gray.Gray16At(0, 1).Y, qt.Equals, uint16(0x8000))
}

func TestToImageRGB(t *testing.T) {
	c := qt.New(t)

	img := seqimg.ToImage(rgbFrame())
	rgba, ok := img.(*image.NRGBA64)
	c.Assert(ok, qt.IsTrue)
	px := rgba.NRGBA64At(0, 0)
	c.Assert(px.R, qt.Equals, uint16(0xffff))
	c.Assert(px.G, qt.Equals, uint16(0x8000))
	c.Assert(px.B, qt.Equals, uint16(0))
	c.Assert(px.A, qt.Equals, uint16(0xffff))
}

func TestToImageClampsOverrange(t *testing.T) {
	c := qt.New(t)

	// Fixed-255 normalization leaves deep samples above 1.0.
	f := grayFrame()
	f.Pix = []float64{257.0, -1, 0, 0}
	img := seqimg.ToImage(f).(*image.Gray16)
	c.Assert(img.Gray16At(0, 0).Y, qt.Equals, uint16(0xffff))
	c.Assert(img.Gray16At(1, 0).Y, qt.Equals, uint16(0))
}

func TestEncodeFormats(t *testing.T) {
	c := qt.New(t)

	img := seqimg.ToImage(grayFrame())

	for _, format := range seqimg.Formats {
		c.Run(format, func(c *qt.C) {
			var buf bytes.Buffer
			c.Assert(seqimg.Encode(&buf, img, format), qt.IsNil)
			c.Assert(buf.Len(), qt.Not(qt.Equals), 0)

			var (
				decoded image.Image
				err     error
			)
			switch format {
			case "tiff":
				decoded, err = tiff.Decode(&buf)
			case "bmp":
				decoded, err = bmp.Decode(&buf)
			default:
				decoded, _, err = image.Decode(&buf)
			}
			c.Assert(err, qt.IsNil)
			c.Assert(decoded.Bounds(), qt.Equals, img.Bounds())
		})
	}

	var buf bytes.Buffer
	c.Assert(seqimg.Encode(&buf, img, "gif"), qt.ErrorMatches, `seqimg: unsupported format "gif"`)
}

func TestFileSink(t *testing.T) {
	c := qt.New(t)

	dir := filepath.Join(c.TempDir(), "out")
	sink, err := seqimg.NewFileSink(dir, "png")
	c.Assert(err, qt.IsNil)

	f := grayFrame()
	f.Index = 42
	c.Assert(sink.HandleFrame(f), qt.IsNil)

	b, err := os.ReadFile(filepath.Join(dir, "frame_000042.png"))
	c.Assert(err, qt.IsNil)
	img, _, err := image.Decode(bytes.NewReader(b))
	c.Assert(err, qt.IsNil)
	c.Assert(img.Bounds().Dx(), qt.Equals, 2)
}
