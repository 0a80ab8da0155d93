// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import (
	"bytes"
	"io"
)

// Reader decompresses an LZ77 stream incrementally: it never materializes
// more than the 4 KiB ring plus the current 8-instruction group before
// handing bytes to the caller, per spec.md section 5's resource discipline.
type Reader struct {
	InputOffset  int64
	OutputOffset int64

	rd  io.ByteReader
	err error

	toRead []byte // Uncompressed data ready to be emitted from Read
	ring   ring
	flags  uint16 // 1 means "load next flag byte"; otherwise the group's unread bits above a sentinel bit

	// pendingDist/pendingLen describe a back-reference copy instruction that
	// filled the ring before it could finish; stepGroup resumes it on the
	// next call instead of re-reading its two instruction bytes.
	pendingDist int
	pendingLen  int

	step func(*Reader) // single step of decompression work (can panic)

	// Cancel, if non-nil, is polled once per 8-instruction group. If it
	// returns true, Read returns io.ErrClosedPipe and the Reader becomes
	// permanently broken, without leaking the ring or any partial group.
	Cancel func() bool
}

// NewReader constructs a Reader over r. r need not be buffered; Reader reads
// exactly one byte at a time via io.ByteReader, wrapping r in a
// bufio.Reader-free minimal adapter if necessary.
func NewReader(r io.Reader) *Reader {
	lr := new(Reader)
	lr.Reset(r)
	return lr
}

// Reset reconfigures lr to decompress from r, reusing lr's internal buffers.
func (lr *Reader) Reset(r io.Reader) {
	*lr = Reader{ring: lr.ring, toRead: lr.toRead[:0]}
	if br, ok := r.(io.ByteReader); ok {
		lr.rd = br
	} else {
		lr.rd = &byteReaderAdapter{r: r}
	}
	lr.ring.init()
	lr.flags = 1
	lr.step = (*Reader).stepGroup
}

// byteReaderAdapter promotes a plain io.Reader to io.ByteReader one byte at
// a time. Used only when the caller hands in something that isn't already a
// ByteReader (e.g. a raw net.Conn).
type byteReaderAdapter struct {
	r   io.Reader
	buf [1]byte
}

func (a *byteReaderAdapter) ReadByte() (byte, error) {
	_, err := io.ReadFull(a.r, a.buf[:])
	return a.buf[0], err
}

func (lr *Reader) readByte() byte {
	c, err := lr.rd.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = ErrUnexpectedEOF
		}
		panic(err)
	}
	lr.InputOffset++
	return c
}

// Read implements io.Reader.
func (lr *Reader) Read(buf []byte) (int, error) {
	for {
		if len(lr.toRead) > 0 {
			cnt := copy(buf, lr.toRead)
			lr.toRead = lr.toRead[cnt:]
			lr.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if lr.err != nil {
			return 0, lr.err
		}
		func() {
			defer errRecover(&lr.err)
			lr.step(lr)
		}()
		if lr.err != nil {
			lr.toRead = lr.ring.readFlush()
		}
	}
}

// stepGroup processes one 8-instruction flag group.
func (lr *Reader) stepGroup() {
	if lr.flags == 1 {
		if lr.Cancel != nil && lr.Cancel() {
			panic(io.ErrClosedPipe)
		}
		lr.flags = 0x100 | uint16(lr.readByte())
	}

	for lr.flags != 1 {
		// Resume a copy instruction a previous call couldn't finish because
		// the ring filled mid-copy, rather than re-reading its two
		// instruction bytes from the input.
		if lr.pendingLen > 0 {
			if lr.ring.availWrite() == 0 {
				lr.toRead = lr.ring.readFlush()
				return
			}
			n := lr.ring.writeCopy(lr.pendingDist, lr.pendingLen)
			lr.pendingLen -= n
			if lr.pendingLen > 0 {
				lr.toRead = lr.ring.readFlush()
				return
			}
			continue
		}

		if lr.ring.availWrite() == 0 {
			lr.toRead = lr.ring.readFlush()
			return
		}

		isLiteral := lr.flags&1 == 1
		lr.flags >>= 1

		if isLiteral {
			lr.ring.writeByte(lr.readByte())
			continue
		}

		hi := lr.readByte()
		lo := lr.readByte()
		dist := (int(hi) << 4) | int(lo>>4)
		if dist == 0 {
			panic(io.EOF) // end-of-stream marker
		}
		if dist > lr.ring.histSize() {
			panic(ErrBackrefOutOfWindow)
		}
		length := int(lo&0x0F) + 3
		if n := lr.ring.writeCopy(dist, length); n < length {
			lr.pendingDist = dist
			lr.pendingLen = length - n
			lr.toRead = lr.ring.readFlush()
			return
		}
	}

	// Flag word exhausted; next call loads a fresh byte. Only an explicit
	// end-marker ends the stream cleanly: a stream that stops here, short of
	// that marker, fails inside readByte with ErrUnexpectedEOF on the attempt
	// to load the next flag byte.
	lr.flags = 1
}

// Decompress is the non-streaming bytes-in/bytes-out convenience form of the
// envelope's inbound contract (spec.md section 4.E): run the decoder to
// completion and return the full output.
func Decompress(data []byte) ([]byte, error) {
	lr := NewReader(bytes.NewReader(data))
	var out bytes.Buffer
	_, err := io.Copy(&out, lr)
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
