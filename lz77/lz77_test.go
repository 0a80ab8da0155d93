// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lz77

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/hiiragi-go/hiiragi/internal/testutil"
)

func roundTrip(t *testing.T, data []byte) {
	t.Helper()
	compressed := Compress(data)
	got, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(data))
	}
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil)
}

func TestRoundTripSingleByte(t *testing.T) {
	roundTrip(t, []byte{0x42})
}

func TestRoundTripLiteralOnly(t *testing.T) {
	roundTrip(t, []byte("The quick brown fox jumps over the lazy dog."))
}

func TestRoundTripOverlappingBackref(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 10, 100, 2000} {
		data := []byte(strings.Repeat("abc", n))
		roundTrip(t, data)
	}
}

// TestCompressOverlappingBackref checks the concrete scenario from spec.md
// section 8: a 15-byte run of "ABCABCABCABCABC" should collapse into three
// literal bytes followed by a single overlapping back-reference with
// distance 3 and a length of at least 12, reusing the 3-byte literal run
// just written.
func TestCompressOverlappingBackref(t *testing.T) {
	data := []byte("ABCABCABCABCABC")
	compressed := Compress(data)
	if len(compressed) == 0 {
		t.Fatal("Compress() produced no output")
	}

	flags := compressed[0]
	pos := 1
	sawBackref := false
	for slot := 0; slot < 8 && pos+1 < len(compressed); slot++ {
		if flags&(1<<uint(slot)) != 0 {
			pos++
			continue
		}
		hi, lo := compressed[pos], compressed[pos+1]
		dist := (int(hi) << 4) | int(lo>>4)
		if dist == 0 {
			break // end marker
		}
		length := int(lo&0x0F) + 3
		if dist == 3 && length >= 12 {
			sawBackref = true
		}
		pos += 2
	}
	if !sawBackref {
		t.Errorf("Compress(%q) never emitted a distance=3 length>=12 back-reference", data)
	}

	got, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, data)
	}
}

func TestRoundTripIdempotence(t *testing.T) {
	r := testutil.NewRand(1)
	roundTrip(t, r.Bytes(2<<20))
}

func TestDecompressRejectsTruncatedStream(t *testing.T) {
	full := Compress([]byte("hello, hello, hello, world"))
	truncated := full[:len(full)-1]
	lr := NewReader(bytes.NewReader(truncated))
	_, err := io.Copy(io.Discard, lr)
	if err == nil {
		t.Fatal("Decompress(truncated) succeeded, want error")
	}
}

func TestDecompressRejectsOutOfWindowBackref(t *testing.T) {
	// flags=0 (all 8 slots are back-references); first instruction claims a
	// distance far beyond any history produced so far.
	stream := []byte{0x00, 0xFF, 0xF0, 0x00, 0x00}
	_, err := Decompress(stream)
	if err != ErrBackrefOutOfWindow {
		t.Fatalf("Decompress() error = %v, want %v", err, ErrBackrefOutOfWindow)
	}
}

func TestCompressLargeInputUsesTrigramOnlyMode(t *testing.T) {
	r := testutil.NewRand(2)
	base := r.Bytes(64)
	var buf bytes.Buffer
	for buf.Len() <= looseCompressThreshold {
		buf.Write(base)
	}
	roundTrip(t, buf.Bytes())
}
