// Package binio provides a positional little-endian field writer for
// fixed-layout save records.
package binio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// RangeError reports a value that does not fit the declared wire width of a field.
type RangeError struct {
	Field string
	Value int64
	Bits  int
}

// Error implements error.
func (e *RangeError) Error() string {
	return fmt.Sprintf("binio: field %q value %d does not fit in %d unsigned bits", e.Field, e.Value, e.Bits)
}

// Writer writes unsigned fields in little-endian order to an underlying io.Writer.
//
// Writer never closes or flushes the underlying writer.
type Writer struct {
	w io.Writer
	n int
}

// NewWriter wraps w.
//
// Precondition: w must be non-nil.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Len returns the number of bytes successfully written so far.
func (w *Writer) Len() int {
	return w.n
}

// U8 writes v as a single byte.
//
// Postcondition: returns *RangeError without writing if v is outside [0, 255].
func (w *Writer) U8(field string, v int) error {
	if err := checkRange(field, int64(v), 8); err != nil {
		return err
	}
	return w.write([]byte{byte(v)})
}

// U16 writes v as two little-endian bytes.
//
// Postcondition: returns *RangeError without writing if v is outside [0, 65535].
func (w *Writer) U16(field string, v int) error {
	if err := checkRange(field, int64(v), 16); err != nil {
		return err
	}
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	return w.write(b[:])
}

// U32 writes v as four little-endian bytes.
//
// Postcondition: returns *RangeError without writing if v is outside [0, 2^32-1].
func (w *Writer) U32(field string, v int64) error {
	if err := checkRange(field, v, 32); err != nil {
		return err
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	return w.write(b[:])
}

// Bool writes 1 for true and 0 for false.
func (w *Writer) Bool(field string, v bool) error {
	if v {
		return w.U8(field, 1)
	}
	return w.U8(field, 0)
}

// Bytes writes b verbatim.
func (w *Writer) Bytes(field string, b []byte) error {
	if err := w.write(b); err != nil {
		return fmt.Errorf("writing %s: %w", field, err)
	}
	return nil
}

func (w *Writer) write(b []byte) error {
	n, err := w.w.Write(b)
	w.n += n
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	return err
}

func checkRange(field string, v int64, bits int) error {
	if v < 0 || v > int64(1)<<bits-1 {
		return &RangeError{Field: field, Value: v, Bits: bits}
	}
	return nil
}
