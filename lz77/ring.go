// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

// ring implements the LZ77 sliding back-reference window used by the
// decoder. Every byte ever emitted is also
// a byte available for a future back-reference, so the window doubles as the
// output buffer: writeByte/writeCopy append to it, and readFlush drains
// whatever has not yet been handed to the caller.
//
// This mirrors the stdlib compress/flate dictDecoder's buffer-doubles-as-
// history design, sized to the format's fixed 4 KiB window instead of a
// configurable one.
type ring struct {
	hist []byte // history buffer, always len(hist) == RingSize once init

	// Invariant: 0 <= rdPos <= wrPos <= len(hist)
	wrPos int
	rdPos int
	full  bool
}

func (r *ring) init() {
	if r.hist == nil {
		r.hist = make([]byte, RingSize)
	}
	r.wrPos, r.rdPos, r.full = 0, 0, false
}

// histSize reports the total amount of historical data available for a
// back-reference.
func (r *ring) histSize() int {
	if r.full {
		return len(r.hist)
	}
	return r.wrPos
}

func (r *ring) availWrite() int { return len(r.hist) - r.wrPos }

func (r *ring) writeSlice() []byte { return r.hist[r.wrPos:] }

func (r *ring) writeMark(cnt int) { r.wrPos += cnt }

func (r *ring) writeByte(c byte) {
	r.hist[r.wrPos] = c
	r.wrPos++
}

// writeCopy copies up to length bytes from dist bytes behind the write
// cursor to the write cursor, stopping early if the buffer fills first; the
// caller is expected to flush and resume copying the remainder once the
// buffer has room again (see stepGroup's pendingLen handling), since a
// match's 18-byte maximum length is not itself bounded by how close the
// cursor already is to the end of the buffer. Overlapping copies (length >
// dist) are supported: the source region may include bytes written earlier
// in this same call. dist may wrap past the start of the buffer, since the
// ring is circular.
func (r *ring) writeCopy(dist, length int) int {
	dstBase := r.wrPos
	dstPos := dstBase
	srcPos := dstPos - dist
	endPos := dstPos + length
	if endPos > len(r.hist) {
		endPos = len(r.hist)
	}

	// Copy the non-overlapping section that wraps around the start of the
	// buffer first: this part does not depend on bytes this call writes.
	if srcPos < 0 {
		srcPos += len(r.hist)
		dstPos += copy(r.hist[dstPos:endPos], r.hist[srcPos:])
		srcPos = 0
	}

	// Copy the remaining, possibly self-overlapping section a
	// source-window's-worth at a time; each iteration's source includes
	// bytes the previous iteration just wrote, which is exactly how LZ77
	// run-length repetition (length > dist) is expressed.
	for dstPos < endPos {
		dstPos += copy(r.hist[dstPos:endPos], r.hist[srcPos:dstPos])
	}

	r.wrPos = dstPos
	return dstPos - dstBase
}

// readFlush returns the bytes written since the last readFlush, resetting
// the buffer to the front once it fills (the ring "wraps").
func (r *ring) readFlush() []byte {
	toRead := r.hist[r.rdPos:r.wrPos]
	r.rdPos = r.wrPos
	if r.wrPos == len(r.hist) {
		r.wrPos, r.rdPos = 0, 0
		r.full = true
	}
	return toRead
}
