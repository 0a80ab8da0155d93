// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lz77 implements the Konami-specific LZ77 variant used to compress
// e-amusement protocol packet bodies: a stream of 8-instruction groups over a
// fixed 4 KiB sliding window, with support for overlapping back-references.
package lz77

// RingSize is the fixed size, in bytes, of the sliding back-reference
// window. Not configurable on the wire.
const RingSize = 4096

// maxMatchLen is the longest back-reference the encoder will ever emit: a
// 4-bit length field encodes copy_len-3, so the maximum representable length
// is 3+15 = 18.
const maxMatchLen = 18

// looseCompressThreshold is the input size above which the encoder stops
// extending matches by single bytes and grows them only in 3-byte steps
// (trigram-only mode), trading ratio for bounded cost (spec.md section 4.A
// "Performance profile").
const looseCompressThreshold = 512 * 1024

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "lz77: " + string(e) }

var (
	// ErrUnexpectedEOF is returned when the stream ends mid-backref, or ends
	// exactly on a flag-byte boundary with the next instruction unread.
	ErrUnexpectedEOF error = Error("unexpected end of stream")

	// ErrMalformedFlag is returned on an impossible bit pattern in the flag
	// byte state machine. The format has no such pattern today, but the
	// sentinel exists for state-machine implementations that validate it.
	ErrMalformedFlag error = Error("malformed flag byte")

	// ErrBackrefOutOfWindow is returned when a back-reference's distance
	// exceeds the amount of history produced so far.
	ErrBackrefOutOfWindow error = Error("backref distance out of window")
)

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
