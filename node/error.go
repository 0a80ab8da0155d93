// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package node

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "node: " + string(e) }

var (
	// ErrDuplicateAttribute is returned by a serializer when a single node
	// carries the same attribute name twice on the wire.
	ErrDuplicateAttribute error = Error("duplicate attribute on a single node")

	// ErrBadName is returned when a node or attribute name fails the
	// [A-Za-z_][A-Za-z0-9_]* grammar or exceeds 63 encoded bytes.
	ErrBadName error = Error("malformed node or attribute name")
)

// ValidName reports whether s is a legal node/attribute name per spec.md
// section 3.1: ASCII, [A-Za-z_][A-Za-z0-9_]*, up to 63 bytes encoded.
func ValidName(s string) bool {
	if len(s) == 0 || len(s) > 63 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
