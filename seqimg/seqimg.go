// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

// Package seqimg converts decoded SEQ frames to the standard image types
// and encodes them to common file formats. It is the file-writing sink
// for the norpix decoder; the decoder itself never touches the
// filesystem.
package seqimg

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/seqvision/norpix"
)

// Formats lists the supported output encodings.
var Formats = []string{"png", "jpeg", "tiff", "bmp"}

// ToImage converts a decoded frame to an image. Single-channel frames
// become Gray16, multi-channel frames NRGBA64, so 12/14/16-bit source
// precision survives the conversion. Samples are clamped to [0, 1];
// values above 1.0 can occur under the fixed-255 normalization policy
// for deep frames.
func ToImage(f norpix.Frame) image.Image {
	if f.Channels == 1 {
		img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
		for row := 0; row < f.Height; row++ {
			for col := 0; col < f.Width; col++ {
				img.SetGray16(col, row, color.Gray16{Y: sample16(f.At(row, col, 0))})
			}
		}
		return img
	}

	img := image.NewNRGBA64(image.Rect(0, 0, f.Width, f.Height))
	for row := 0; row < f.Height; row++ {
		for col := 0; col < f.Width; col++ {
			c := color.NRGBA64{A: 0xffff}
			c.R = sample16(f.At(row, col, 0))
			if f.Channels > 1 {
				c.G = sample16(f.At(row, col, 1))
			}
			if f.Channels > 2 {
				c.B = sample16(f.At(row, col, 2))
			}
			img.SetNRGBA64(col, row, c)
		}
	}
	return img
}

func sample16(v float64) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}

// Encode writes img to w in the named format (png, jpeg, tiff or bmp).
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "jpeg", "jpg":
		return jpeg.Encode(w, img, nil)
	case "tiff", "tif":
		return tiff.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("seqimg: unsupported format %q", format)
	}
}

// FileSink writes each frame it receives to Dir as
// frame_<index>.<Format>. Its HandleFrame method satisfies the decoder's
// frame callback.
type FileSink struct {
	Dir    string
	Format string
}

// NewFileSink creates the output directory if needed and returns a sink
// writing the given format into it.
func NewFileSink(dir, format string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("seqimg: create output dir: %w", err)
	}
	return &FileSink{Dir: dir, Format: format}, nil
}

// HandleFrame encodes one frame to its own file.
func (s *FileSink) HandleFrame(f norpix.Frame) error {
	name := filepath.Join(s.Dir, fmt.Sprintf("frame_%06d.%s", f.Index, ext(s.Format)))
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	defer out.Close()
	return Encode(out, ToImage(f), s.Format)
}

func ext(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	default:
		return format
	}
}
