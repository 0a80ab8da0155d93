// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package session

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"
)

var keyPattern = regexp.MustCompile(`^1-[0-9a-f]{8}-[0-9a-f]{4}$`)

// referenceSalt reimplements the LCG independently of GenerateKey, to check
// the salt computation without asserting on package-private state.
func referenceSalt(seed uint32) string {
	s := seed
	step := func() uint32 {
		upper := s*saltMul + saltInc
		s = s*primaryMul + primaryInc
		s = s*primaryMul + primaryInc
		return (upper & 0x7FFF0000) | ((s >> 15) & 0xFFFF)
	}
	hi := step()
	lo := step()
	salt := (hi&0xFFFF)<<16 | (lo & 0xFFFF)
	hex := fmt.Sprintf("%x", salt)
	if len(hex) < 4 {
		hex = strings.Repeat("0", 4-len(hex)) + hex
	}
	return hex[:4]
}

func TestGenerateKeyFixedClockAndSeed(t *testing.T) {
	Reset()
	const unixSeconds = 0x6123ABCD
	nowFunc = func() time.Time { return time.Unix(unixSeconds, 0) }
	defer func() { nowFunc = time.Now }()

	wantSalt := referenceSalt(initialState)

	key, date := GenerateKey()
	wantKey := fmt.Sprintf("1-6123abcd-%s", wantSalt)
	if key != wantKey {
		t.Fatalf("key = %q, want %q", key, wantKey)
	}
	wantDate := time.Unix(unixSeconds, 0).UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT")
	if date != wantDate {
		t.Fatalf("date = %q, want %q", date, wantDate)
	}
	if !strings.HasSuffix(date, "GMT") {
		t.Fatalf("date %q missing GMT suffix", date)
	}
}

func TestGenerateKeyMatchesShape(t *testing.T) {
	Reset()
	for i := 0; i < 10; i++ {
		key, _ := GenerateKey()
		if !keyPattern.MatchString(key) {
			t.Fatalf("key %q does not match %s", key, keyPattern)
		}
	}
}

func TestGenerateKeyAdvancesState(t *testing.T) {
	Reset()
	k1, _ := GenerateKey()
	k2, _ := GenerateKey()
	if k1 == k2 {
		t.Fatalf("successive keys identical: %q", k1)
	}
}

func TestResetIsDeterministic(t *testing.T) {
	Reset()
	nowFunc = func() time.Time { return time.Unix(1000, 0) }
	defer func() { nowFunc = time.Now }()

	k1, _ := GenerateKey()
	Reset()
	k2, _ := GenerateKey()
	if k1 != k2 {
		t.Fatalf("Reset did not reproduce the same key: %q vs %q", k1, k2)
	}
}

func TestConcurrentGenerateKeyDoesNotRace(t *testing.T) {
	Reset()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				GenerateKey()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
