// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

// Command seqdump inspects Norpix SEQ files and extracts their frames to
// image files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/seqvision/norpix"
	"github.com/seqvision/norpix/seqimg"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Info    InfoCmd    `cmd:"" help:"Print the header metadata of a SEQ file."`
	Extract ExtractCmd `cmd:"" help:"Extract frames from a SEQ file to image files."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// InfoCmd prints the header of a SEQ file.
type InfoCmd struct {
	File string `arg:"" help:"SEQ file to inspect."`
}

// ExtractCmd decodes a frame range to image files.
type ExtractCmd struct {
	File   string `arg:"" help:"SEQ file to read."`
	Output string `short:"o" default:"." help:"Output directory."`
	Format string `short:"f" default:"png" enum:"png,jpeg,tiff,bmp" help:"Output image format."`

	First int `default:"0" help:"First frame to extract (1-based; 0 = from the start)."`
	Last  int `default:"0" help:"Last frame to extract (inclusive; 0 = through the end)."`

	Normalize string `default:"fixed255" enum:"fixed255,bitdepth" help:"Sample scaling policy."`
	Workers   int    `short:"w" default:"1" help:"Parallel decode workers (0 = one per CPU)."`
	Quiet     bool   `short:"q" help:"Suppress progress output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("seqdump"),
		kong.Description("Inspect and extract Norpix SEQ camera sequences."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the info command.
func (cmd *InfoCmd) Run() error {
	in, err := os.Open(cmd.File)
	if err != nil {
		return err
	}
	defer in.Close()

	h, err := norpix.DecodeHeader(in)
	if err != nil {
		return err
	}

	fmt.Printf("version:          %d\n", h.Version)
	fmt.Printf("header size:      %d\n", h.HeaderSize)
	fmt.Printf("description:      %s\n", h.Description)
	fmt.Printf("image:            %dx%d %s\n", h.Width, h.Height, h.ImageFormat)
	fmt.Printf("bit depth:        %d (%d real)\n", h.BitDepth, h.BitDepthReal)
	fmt.Printf("image size:       %d bytes\n", h.ImageSizeBytes)
	fmt.Printf("allocated frames: %d\n", h.AllocatedFrames)
	fmt.Printf("origin:           %d\n", h.Origin)
	fmt.Printf("frame stride:     %d bytes\n", h.TrueImageSize)
	fmt.Printf("frame rate:       %g fps\n", h.FrameRate)
	return nil
}

// Run executes the extract command.
func (cmd *ExtractCmd) Run() error {
	in, err := os.Open(cmd.File)
	if err != nil {
		return err
	}
	defer in.Close()

	sink, err := seqimg.NewFileSink(cmd.Output, cmd.Format)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "interrupted, stopping after the current frame")
		cancel()
	}()

	workers := cmd.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	policy := norpix.NormalizeFixed255
	if cmd.Normalize == "bitdepth" {
		policy = norpix.NormalizeBitDepth
	}

	opts := norpix.Options{
		R:           in,
		HandleFrame: sink.HandleFrame,
		First:       cmd.First,
		Last:        cmd.Last,
		Normalize:   policy,
		Ctx:         ctx,
		Warnf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		},
	}
	if !cmd.Quiet {
		opts.Progressf = func(frac float64) {
			fmt.Fprintf(os.Stderr, "\r%3.0f%%", frac*100)
		}
	}
	if workers > 1 {
		opts.Concurrency = workers
		opts.OpenReader = func() (io.ReadSeekCloser, error) {
			return os.Open(cmd.File)
		}
	}

	res, err := norpix.Decode(opts)
	if !cmd.Quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "decoded %d of %d requested frames\n", res.FramesDecoded, res.Range.Count())
	return nil
}

// Run prints the version.
func (cmd *VersionCmd) Run() error {
	fmt.Printf("seqdump %s (%s)\n", version, runtime.Version())
	return nil
}
