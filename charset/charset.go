// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package charset transcodes the text charsets declared on the wire (the
// second magic byte of a binary document, or an XML prolog's encoding
// attribute) to and from UTF-8, the in-memory representation used by
// node.Value.Str.
package charset

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// Charset identifies a declared text encoding per spec.md section 4.C.
type Charset uint8

const (
	ASCII Charset = iota
	EUCJP
	ISO88591
	UTF8
	ShiftJIS
)

// MagicByte is the second byte of a binary document header identifying the
// charset.
func (c Charset) MagicByte() byte {
	switch c {
	case ASCII:
		return 0x42
	case EUCJP:
		return 0x44
	case ISO88591:
		return 0x52
	case UTF8:
		return 0x54
	case ShiftJIS:
		return 0x58
	default:
		return 0
	}
}

// FromMagicByte resolves a Charset from a binary document's second header
// byte.
func FromMagicByte(b byte) (Charset, bool) {
	switch b {
	case 0x42:
		return ASCII, true
	case 0x44:
		return EUCJP, true
	case 0x52:
		return ISO88591, true
	case 0x54:
		return UTF8, true
	case 0x58:
		return ShiftJIS, true
	default:
		return 0, false
	}
}

// Name returns the declared-in-prolog charset name used by the XML
// serializer, e.g. "Shift_JIS".
func (c Charset) Name() string {
	switch c {
	case ASCII:
		return "us-ascii"
	case EUCJP:
		return "EUC-JP"
	case ISO88591:
		return "ISO-8859-1"
	case UTF8:
		return "UTF-8"
	case ShiftJIS:
		return "Shift_JIS"
	default:
		return "UTF-8"
	}
}

// FromName resolves a Charset from an XML prolog's encoding name.
func FromName(name string) (Charset, bool) {
	switch name {
	case "us-ascii", "ascii", "ASCII":
		return ASCII, true
	case "EUC-JP", "euc-jp":
		return EUCJP, true
	case "ISO-8859-1", "iso-8859-1", "latin1":
		return ISO88591, true
	case "UTF-8", "utf-8":
		return UTF8, true
	case "Shift_JIS", "shift_jis", "Shift-JIS", "SJIS":
		return ShiftJIS, true
	default:
		return 0, false
	}
}

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "charset: " + string(e) }

// ErrInvalidText is returned when bytes cannot be decoded under the
// declared charset.
var ErrInvalidText error = Error("undecodable bytes for declared charset")

func (c Charset) encoding() encoding.Encoding {
	switch c {
	case EUCJP:
		return japanese.EUCJP
	case ISO88591:
		return charmap.ISO8859_1
	case ShiftJIS:
		return japanese.ShiftJIS
	default:
		return nil // ASCII and UTF8 are handled directly below
	}
}

// Decode converts wire bytes in charset c to a UTF-8 string.
func Decode(c Charset, b []byte) (string, error) {
	switch c {
	case ASCII:
		for _, x := range b {
			if x > 0x7F {
				return "", ErrInvalidText
			}
		}
		return string(b), nil
	case UTF8:
		if !utf8.Valid(b) {
			return "", ErrInvalidText
		}
		return string(b), nil
	default:
		out, err := c.encoding().NewDecoder().Bytes(b)
		if err != nil {
			return "", ErrInvalidText
		}
		return string(out), nil
	}
}

// Encode converts a UTF-8 string to wire bytes in charset c.
func Encode(c Charset, s string) ([]byte, error) {
	switch c {
	case ASCII:
		b := []byte(s)
		for _, x := range b {
			if x > 0x7F {
				return nil, ErrInvalidText
			}
		}
		return b, nil
	case UTF8:
		return []byte(s), nil
	default:
		out, err := c.encoding().NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, ErrInvalidText
		}
		return out, nil
	}
}
