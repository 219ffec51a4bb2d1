// Copyright 2025 The norpix authors
// SPDX-License-Identifier: MIT

package norpix

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

var errShortRead = errors.New("short read")

// streamReader is a wrapper around a ReadSeeker that provides methods to
// read binary data. All multi-byte fields in a SEQ file are little-endian.
// Note that this is not thread safe; concurrent decoding uses one
// streamReader per worker.
type streamReader struct {
	r         io.ReadSeeker
	byteOrder binary.ByteOrder

	buf []byte

	readErr error
}

func newStreamReader(r io.ReadSeeker) *streamReader {
	return &streamReader{
		r:         r,
		byteOrder: binary.LittleEndian,
	}
}

func (e *streamReader) allocateBuf(length int) {
	if length > cap(e.buf) {
		e.buf = make([]byte, length)
	}
}

func (e *streamReader) read2() uint16 {
	const n = 2
	e.readNIntoBuf(n)
	return e.byteOrder.Uint16(e.buf[:n])
}

func (e *streamReader) read4() uint32 {
	const n = 4
	e.readNIntoBuf(n)
	return e.byteOrder.Uint32(e.buf[:n])
}

func (e *streamReader) read4s() int32 {
	return int32(e.read4())
}

// read8f reads a little-endian IEEE 754 double.
func (e *streamReader) read8f() float64 {
	const n = 8
	e.readNIntoBuf(n)
	return math.Float64frombits(e.byteOrder.Uint64(e.buf[:n]))
}

// readBytesVolatile reads a slice of bytes from the stream
// which is not guaranteed to be valid after the next read.
func (e *streamReader) readBytesVolatile(n int) []byte {
	e.readNIntoBuf(n)
	return e.buf[:n]
}

func (e *streamReader) readNIntoBuf(n int) {
	if err := e.readNIntoBufE(n); err != nil {
		e.stop(err)
	}
}

func (e *streamReader) readNIntoBufE(n int) error {
	e.allocateBuf(n)
	n2, err := io.ReadFull(e.r, e.buf[:n])
	if err != nil {
		return err
	}
	if n != n2 {
		return errShortRead
	}
	return nil
}

// readFullE reads len(b) bytes without the panic-based unwinding, so the
// caller can distinguish a short read from other failures.
func (e *streamReader) readFullE(b []byte) error {
	_, err := io.ReadFull(e.r, b)
	return err
}

// size returns the total stream length, restoring the cursor.
func (e *streamReader) size() (int64, error) {
	cur, err := e.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := e.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := e.r.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

func (e *streamReader) seek(pos int64) {
	if _, err := e.r.Seek(pos, io.SeekStart); err != nil {
		e.stop(err)
	}
}

func (e *streamReader) seekE(pos int64) error {
	_, err := e.r.Seek(pos, io.SeekStart)
	return err
}

func (e *streamReader) stop(err error) {
	if err != nil {
		e.readErr = err
	}
	panic(errStop)
}
