// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package xmlfmt

import (
	"strconv"
	"strings"

	"github.com/hiiragi-go/hiiragi/node"
)

var unescapeReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&apos;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

func unescape(s string) string { return unescapeReplacer.Replace(s) }

// parser is a small hand-rolled recursive-descent reader for the subset of
// XML this package's writer produces: a prolog, elements with ordered
// quoted attributes, self-closing tags, mixed text+child content, and no
// comments, CDATA, or namespaces.
type parser struct {
	s   string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.s) }

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.s[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.s[p.pos:], s)
}

func (p *parser) consumeProlog() bool {
	if !p.hasPrefix("<?xml") {
		return false
	}
	end := strings.Index(p.s[p.pos:], "?>")
	if end < 0 {
		return false
	}
	p.pos += end + len("?>")
	return true
}

// readUntil consumes and returns everything up to (not including) the next
// occurrence of delim.
func (p *parser) readUntil(delim byte) (string, bool) {
	i := strings.IndexByte(p.s[p.pos:], delim)
	if i < 0 {
		return "", false
	}
	s := p.s[p.pos : p.pos+i]
	p.pos += i
	return s, true
}

// readName reads a bare identifier (tag or attribute name): runs of
// non-space, non-"=", non-">", non-"/" characters.
func (p *parser) readName() string {
	start := p.pos
	for !p.eof() {
		switch p.s[p.pos] {
		case ' ', '\t', '\r', '\n', '=', '>', '/':
			return p.s[start:p.pos]
		}
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *parser) parseAttributes() ([]node.Attribute, error) {
	var attrs []node.Attribute
	for {
		p.skipSpace()
		if p.eof() {
			return nil, ErrMalformed
		}
		c := p.s[p.pos]
		if c == '/' || c == '>' {
			return attrs, nil
		}
		key := p.readName()
		if key == "" {
			return nil, ErrMalformed
		}
		p.skipSpace()
		if p.eof() || p.s[p.pos] != '=' {
			return nil, ErrMalformed
		}
		p.pos++
		p.skipSpace()
		if p.eof() {
			return nil, ErrMalformed
		}
		quote := p.s[p.pos]
		if quote != '"' && quote != '\'' {
			return nil, ErrMalformed
		}
		p.pos++
		raw, ok := p.readUntil(quote)
		if !ok {
			return nil, ErrMalformed
		}
		p.pos++ // consume closing quote
		attrs = append(attrs, node.Attribute{Key: key, Value: unescape(raw)})
	}
}

// parseElement parses a single element (and, recursively, its content)
// starting at a '<'.
func (p *parser) parseElement() (*node.Node, error) {
	if p.eof() || p.s[p.pos] != '<' {
		return nil, ErrMalformed
	}
	p.pos++
	name := p.readName()
	if name == "" {
		return nil, ErrMalformed
	}
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}

	selfClosing := false
	if !p.eof() && p.s[p.pos] == '/' {
		selfClosing = true
		p.pos++
	}
	if p.eof() || p.s[p.pos] != '>' {
		return nil, ErrMalformed
	}
	p.pos++

	kindName, hasType := attrForKey(attrs, "__type")
	countStr, hasCount := attrForKey(attrs, "__count")
	realAttrs := withoutSynthetic(attrs)

	if selfClosing {
		n, err := newTypedNode(name, kindName, hasType, hasCount, "", nil)
		if err != nil {
			return nil, err
		}
		applyAttrs(n, realAttrs)
		return n, nil
	}

	leadingText, ok := p.readUntil('<')
	if !ok {
		return nil, ErrMalformed
	}
	leadingText = unescape(leadingText)

	var items []string
	var children []*node.Node
	for {
		p.skipSpace()
		if p.hasPrefix("</") {
			break
		}
		if p.hasPrefix("<item>") {
			p.pos += len("<item>")
			text, ok := p.readUntil('<')
			if !ok {
				return nil, ErrMalformed
			}
			if !p.hasPrefix("</item>") {
				return nil, ErrMalformed
			}
			p.pos += len("</item>")
			items = append(items, unescape(text))
			continue
		}
		child, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	p.pos += len("</")
	closeName := p.readName()
	if closeName != name || p.eof() || p.s[p.pos] != '>' {
		return nil, ErrMalformed
	}
	p.pos++

	// The writer puts a newline and the child indent between a value's text
	// and its first child element; that whitespace is not part of the value.
	if len(children) > 0 {
		if i := strings.LastIndexByte(leadingText, '\n'); i >= 0 && strings.TrimLeft(leadingText[i+1:], " ") == "" {
			leadingText = leadingText[:i]
		}
	}

	isArray := hasCount
	n, err := newTypedNode(name, kindName, hasType, isArray, leadingText, items)
	if err != nil {
		return nil, err
	}
	if hasCount {
		if n.IsArray() {
			if want, err := strconv.Atoi(countStr); err == nil && want != arrayLen(n.Kind(), n.Value()) {
				return nil, ErrBadValue
			}
		}
	}
	applyAttrs(n, realAttrs)
	for _, c := range children {
		n.AddChild(c)
	}
	return n, nil
}

func attrForKey(attrs []node.Attribute, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func withoutSynthetic(attrs []node.Attribute) []node.Attribute {
	out := attrs[:0:0]
	for _, a := range attrs {
		if a.Key == "__type" || a.Key == "__count" {
			continue
		}
		out = append(out, a)
	}
	return out
}

func applyAttrs(n *node.Node, attrs []node.Attribute) {
	for _, a := range attrs {
		n.SetAttribute(a.Key, a.Value)
	}
}

// newTypedNode builds a Node from its decoded shape: no __type means Void;
// otherwise hasCount/isArray selects between a scalar and array value built
// from either leadingText (space-separated, non-nested kinds) or items
// (arrays of the kinds usesNestedItems selects, rendered as nested <item>
// elements).
func newTypedNode(name, kindName string, hasType, isArray bool, leadingText string, items []string) (*node.Node, error) {
	if !hasType {
		return node.Void(name), nil
	}
	kind, ok := kindByName[kindName]
	if !ok {
		return nil, ErrUnknownType
	}
	if !isArray {
		v, err := parseScalarText(kind, leadingText)
		if err != nil {
			return nil, err
		}
		return node.Scalar(name, kind, v), nil
	}
	var texts []string
	if usesNestedItems(kind) {
		texts = items
	} else {
		texts = strings.Fields(leadingText)
	}
	v, err := buildArrayValue(kind, texts)
	if err != nil {
		return nil, err
	}
	return node.Array(name, kind, v), nil
}
