// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import "bytes"

// tri is a rolling 3-byte match key.
type tri [3]byte

// encoder holds the match index described in spec.md section 4.A: starts
// indexes every 3-byte run seen so far by its absolute start position. A
// candidate match is extended by direct comparison against data, which
// already holds everything seen so far, rather than by further index
// lookups. wideExtend gates whether a match may be extended past a 3-byte
// step by a trailing 1-2 byte remainder; it is false for inputs larger than
// looseCompressThreshold, trading ratio for coarser (trigram-only) matching
// on large inputs, per the teacher's cutover.
type encoder struct {
	data       []byte
	starts     map[tri]map[int]struct{}
	last       tri
	pos        int // absolute position of the next byte to be indexed
	wideExtend bool
}

func newEncoder(data []byte) *encoder {
	return &encoder{
		data:       data,
		starts:     make(map[tri]map[int]struct{}),
		wideExtend: len(data) <= looseCompressThreshold,
	}
}

// mark records that e.data[e.pos] == b has just been logically emitted
// (either as a literal or as part of a back-reference's matched run), then
// advances e.pos. It must be called exactly once per consumed input byte, in
// order.
func (e *encoder) mark(b byte) {
	e.last = tri{e.last[1], e.last[2], b}
	if e.pos >= 2 {
		start := e.pos - 2
		set := e.starts[e.last]
		if set == nil {
			set = make(map[int]struct{})
			e.starts[e.last] = set
		}
		set[start] = struct{}{}
	}
	e.pos++
}

func (e *encoder) markN(start, n int) {
	for i := 0; i < n; i++ {
		e.mark(e.data[start+i])
	}
}

// dataEqual reports whether the n bytes at a and b (both absolute positions
// into e.data) are identical, treating a run off the end of data as a
// mismatch.
func (e *encoder) dataEqual(a, b, n int) bool {
	if a < 0 || a+n > len(e.data) || b+n > len(e.data) {
		return false
	}
	return bytes.Equal(e.data[a:a+n], e.data[b:b+n])
}

// candidates returns the live (in-window) absolute start positions of the
// 3-byte key at e.data[at:at+3], pruning stale out-of-window entries from
// the index as it goes.
func (e *encoder) candidates(at int) []int {
	key := tri{e.data[at], e.data[at+1], e.data[at+2]}
	set := e.starts[key]
	if len(set) == 0 {
		return nil
	}
	earliest := e.pos - (RingSize - 1)
	if earliest < 0 {
		earliest = 0
	}
	var out []int
	for p := range set {
		if p < earliest {
			delete(set, p)
			continue
		}
		out = append(out, p)
	}
	return out
}

// filterEqual keeps only the candidates p for which e.data[p+offset:p+offset+n]
// matches e.data[at:at+n].
func (e *encoder) filterEqual(cands []int, offset, at, n int) []int {
	out := cands[:0]
	for _, p := range cands {
		if e.dataEqual(p+offset, at, n) {
			out = append(out, p)
		}
	}
	return out
}

// Compress encodes data as a stream of 8-instruction groups over a fixed
// 4 KiB sliding window, exploiting overlapping back-references (length may
// exceed distance) per spec.md section 4.A. The result always decompresses
// back to exactly data.
func Compress(data []byte) []byte {
	var out bytes.Buffer
	e := newEncoder(data)
	readPos := 0
	left := len(data)

	for {
		var flags byte
		var payload bytes.Buffer
		done := false

		for slot := 0; slot < 8; slot++ {
			if left == 0 {
				payload.Write([]byte{0x00, 0x00})
				done = true
				break
			}

			if left < 3 || e.pos < 3 {
				flags |= 1 << uint(slot)
				payload.WriteByte(data[readPos])
				e.mark(data[readPos])
				readPos++
				left--
				continue
			}

			matchLimit := left
			if matchLimit > maxMatchLen {
				matchLimit = maxMatchLen
			}

			cands := e.candidates(readPos)
			if len(cands) == 0 {
				flags |= 1 << uint(slot)
				payload.WriteByte(data[readPos])
				e.mark(data[readPos])
				readPos++
				left--
				continue
			}

			startPos := e.pos
			e.markN(readPos, 3)
			copyAmount := 3

			for copyAmount < matchLimit {
				if copyAmount+3 <= matchLimit {
					next := e.filterEqual(append([]int(nil), cands...), copyAmount, readPos+copyAmount, 3)
					if len(next) > 0 {
						e.markN(readPos+copyAmount, 3)
						copyAmount += 3
						cands = next
						continue
					}
				}
				if !e.wideExtend {
					break
				}
				for copyAmount < matchLimit {
					next := e.filterEqual(append([]int(nil), cands...), copyAmount, readPos+copyAmount, 1)
					if len(next) == 0 {
						break
					}
					e.markN(readPos+copyAmount, 1)
					copyAmount++
					cands = next
				}
				break
			}

			absolutePos := cands[0]
			dist := startPos - absolutePos

			lo := byte((copyAmount-3)&0x0F) | byte((dist&0x0F)<<4)
			hi := byte((dist >> 4) & 0xFF)
			payload.WriteByte(hi)
			payload.WriteByte(lo)

			readPos += copyAmount
			left -= copyAmount
		}

		out.WriteByte(flags)
		out.Write(payload.Bytes())
		if done {
			break
		}
	}

	return out.Bytes()
}
