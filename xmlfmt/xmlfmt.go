// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package xmlfmt implements the textual node-tree serializer: a prolog
// declaring the document charset followed by the tree in pretty form, with
// per-kind value rendering and __type/__count synthetic attributes driving
// type reconstruction on decode, per spec.md section 4.D.
//
// This is a hand-rolled writer and reader, not encoding/xml: the wire format
// requires exact attribute-order preservation and the __type/__count
// convention, neither of which encoding/xml's struct-tag model expresses
// without losing information.
package xmlfmt

import (
	"strings"

	"github.com/hiiragi-go/hiiragi/charset"
	"github.com/hiiragi-go/hiiragi/node"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "xmlfmt: " + string(e) }

var (
	// ErrMalformed is returned for any structural XML syntax violation:
	// unmatched tags, an unterminated attribute value, or a missing prolog.
	ErrMalformed error = Error("malformed xml document")

	// ErrUnknownCharset is returned when the prolog's encoding name does not
	// resolve to a known charset.Charset.
	ErrUnknownCharset error = Error("unknown prolog charset")

	// ErrUnknownType is returned when a __type attribute does not name a
	// known node.Kind.
	ErrUnknownType error = Error("unknown __type value")

	// ErrBadValue is returned when an element's text content cannot be
	// parsed as the kind named by its __type attribute.
	ErrBadValue error = Error("value does not match its declared type")
)

// Encode renders tree as an XML document declaring cs in its prolog.
func Encode(tree *node.Node, cs charset.Charset) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(`<?xml encoding="`)
	sb.WriteString(cs.Name())
	sb.WriteString(`" ?>` + "\n")
	if err := writeElement(&sb, tree, 0); err != nil {
		return nil, err
	}
	sb.WriteByte('\n')
	return charset.Encode(cs, sb.String())
}

// Decode parses an XML document, returning the reconstructed tree and the
// charset declared in its prolog.
func Decode(data []byte) (*node.Node, charset.Charset, error) {
	// The prolog and all structural syntax are ASCII, which is byte-stable
	// across every charset this format supports; read it in Latin-1 first
	// to recover the declared encoding, then re-decode the whole document
	// properly.
	prologCS, err := sniffPrologCharset(data)
	if err != nil {
		return nil, 0, err
	}
	text, err := charset.Decode(prologCS, data)
	if err != nil {
		return nil, 0, err
	}
	p := &parser{s: text}
	p.skipSpace()
	if !p.consumeProlog() {
		return nil, 0, ErrMalformed
	}
	p.skipSpace()
	tree, err := p.parseElement()
	if err != nil {
		return nil, 0, err
	}
	return tree, prologCS, nil
}

// sniffPrologCharset extracts the encoding="..." value from the prolog
// without first knowing the charset, by scanning raw bytes for the ASCII
// pattern (valid in every charset this format declares, since they are all
// ASCII-transparent in the 0-127 range).
func sniffPrologCharset(data []byte) (charset.Charset, error) {
	s := string(data)
	i := strings.Index(s, `encoding="`)
	if i < 0 {
		return 0, ErrMalformed
	}
	rest := s[i+len(`encoding="`):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return 0, ErrMalformed
	}
	cs, ok := charset.FromName(rest[:j])
	if !ok {
		return 0, ErrUnknownCharset
	}
	return cs, nil
}
