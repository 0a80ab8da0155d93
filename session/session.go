// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package session generates the `X-Eamuse-Info` session key and its
// accompanying Date header from a process-global 32-bit LCG, per spec.md
// section 4.F.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// initialState is the LCG's seed, also its value immediately after process
// start.
const initialState uint32 = 0x41C64E6D

const (
	primaryMul = 0x41C64E6D
	primaryInc = 0x3039
	saltMul    = 0x838C9CDA
	saltInc    = 0x6072
)

// state is the one process-wide mutable resource in this module (spec.md
// section 5, "Shared resources"); mu serializes every access.
var (
	mu    sync.Mutex
	state = initialState
)

// nowFunc is overridden in tests to pin the clock (scenario 5 fixes the
// unix second to a literal value).
var nowFunc = time.Now

// Reset restores the LCG to its initial seed. Exposed for tests that need a
// deterministic starting point; production callers never need it, since the
// state is meant to free-run for the life of the process.
func Reset() {
	mu.Lock()
	state = initialState
	mu.Unlock()
}

// prng advances the LCG twice and returns its 32-bit output. Must be called
// with mu held.
func prng() uint32 {
	upper := state*saltMul + saltInc
	state = state*primaryMul + primaryInc
	state = state*primaryMul + primaryInc
	return (upper & 0x7FFF0000) | ((state >> 15) & 0xFFFF)
}

// GenerateKey returns a fresh `X-Eamuse-Info` session key of the form
// "1-<8 hex seconds>-<4 hex salt>" and the current time as an RFC 1123 Date
// header value ending in "GMT".
//
// The salt is built from two 16-bit PRNG halves combined into 32 bits, then
// truncated to its leading 4 hex characters — discarding roughly half the
// entropy. This is the source's behavior (spec.md section 9's first open
// question) and is preserved verbatim rather than "fixed".
func GenerateKey() (key, date string) {
	now := nowFunc()

	mu.Lock()
	hi := prng()
	lo := prng()
	mu.Unlock()

	salt := (hi&0xFFFF)<<16 | (lo & 0xFFFF)
	secondsHex := fmt.Sprintf("%08x", uint32(now.Unix()))
	saltHex := fmt.Sprintf("%x", salt)
	if len(saltHex) < 4 {
		saltHex = strings.Repeat("0", 4-len(saltHex)) + saltHex
	}
	saltHex = saltHex[:4]

	key = "1-" + secondsHex + "-" + saltHex
	date = now.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT")
	return key, date
}
