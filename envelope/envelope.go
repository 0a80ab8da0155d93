// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package envelope implements the packet-level contract between the HTTP
// front end and the codec core: optional LZ77 compression framing plus
// sniffing between the binary and XML serializers, per spec.md section 4.E.
package envelope

import (
	"github.com/hiiragi-go/hiiragi/binfmt"
	"github.com/hiiragi-go/hiiragi/charset"
	"github.com/hiiragi-go/hiiragi/lz77"
	"github.com/hiiragi-go/hiiragi/node"
	"github.com/hiiragi-go/hiiragi/xmlfmt"
)

// Encoding selects which serializer produces/consumes a packet body.
type Encoding int

const (
	// Binary selects the binfmt wire format (section 4.C).
	Binary Encoding = iota
	// XML selects the xmlfmt wire format (section 4.D).
	XML
)

// binaryMagic is binfmt's first header byte; envelope sniffs it to choose a
// serializer the same way the reference route handler dispatches on it.
const binaryMagic = 0xA0

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "envelope: " + string(e) }

// ErrEmptyBody is returned when Decode is given a zero-length payload after
// any decompression, which cannot carry even a single magic byte.
var ErrEmptyBody error = Error("empty packet body")

// Decode implements the inbound contract: optionally LZ77-decompress body,
// then sniff the leading byte to choose binfmt or xmlfmt and parse the node
// tree.
func Decode(compressed bool, body []byte) (*node.Node, charset.Charset, error) {
	if compressed {
		plain, err := lz77.Decompress(body)
		if err != nil {
			return nil, 0, err
		}
		body = plain
	}
	if len(body) == 0 {
		return nil, 0, ErrEmptyBody
	}
	if body[0] == binaryMagic {
		return binfmt.Decode(body)
	}
	return xmlfmt.Decode(body)
}

// Encode implements the outbound contract: serialize tree with enc under
// charset cs, then optionally LZ77-compress the result.
func Encode(tree *node.Node, cs charset.Charset, enc Encoding, compress bool) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	switch enc {
	case Binary:
		body, err = binfmt.Encode(tree, cs)
	case XML:
		body, err = xmlfmt.Encode(tree, cs)
	default:
		return nil, Error("unknown packet encoding")
	}
	if err != nil {
		return nil, err
	}
	if compress {
		body = lz77.Compress(body)
	}
	return body, nil
}
