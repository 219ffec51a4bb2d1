// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package norpix_test

import (
	"bytes"
	"testing"

	"github.com/seqvision/norpix"
)

func FuzzDecode(f *testing.F) {
	valid := monoSpec(2).build(
		frameRecord([]uint16{1, 2, 3, 4}, 1, 100, 1, 2),
		frameRecord([]uint16{5, 6, 7, 8}, 1, 200, 3, 4),
	)
	f.Add(valid)
	f.Add(valid[:8192])
	f.Add(valid[:500])
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		_, err := norpix.Decode(norpix.Options{
			R:           bytes.NewReader(data),
			HandleFrame: func(norpix.Frame) error { return nil },
		})
		if err != nil {
			if !norpix.IsMalformedHeader(err) && !norpix.IsUnsupportedBitDepth(err) {
				t.Fatalf("unknown error kind in Decode: %v %T", err, err)
			}
		}
	})
}
