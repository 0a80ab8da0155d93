// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package node implements the e-amusement node tree: a typed hierarchical
// document exchanged between the binary and XML serializers and consumed by
// plugin handlers.
package node

import "net/netip"

// Kind identifies the primitive type carried by a Node's value.
type Kind uint8

const (
	// Void marks a node with no value payload, only attributes and children.
	Void Kind = iota
	S8
	U8
	S16
	U16
	S32
	U32
	S64
	U64
	Bin
	Str
	IP4
	Time
	Float
	Pair2S8
	Triple3S8
	Quad4U8
	Pair2S16
	Triple3S16
	Quad4S16
	Pair2S32
	Triple3S32
	Quad4S32
	Pair2S64
	Triple3S64
	Quad4S64
	Bool
)

// names maps a Kind to its wire/textual type name from spec.md section 3.2.
var names = map[Kind]string{
	Void:      "void",
	S8:        "s8",
	U8:        "u8",
	S16:       "s16",
	U16:       "u16",
	S32:       "s32",
	U32:       "u32",
	S64:       "s64",
	U64:       "u64",
	Bin:       "bin",
	Str:       "str",
	IP4:       "ip4",
	Time:      "time",
	Float:     "float",
	Pair2S8:   "2s8",
	Triple3S8: "3s8",
	Quad4U8:   "4u8",
	Pair2S16:  "2s16",
	Triple3S16: "3s16",
	Quad4S16:  "4s16",
	Pair2S32:  "2s32",
	Triple3S32: "3s32",
	Quad4S32:  "4s32",
	Pair2S64:  "2s64",
	Triple3S64: "3s64",
	Quad4S64:  "4s64",
	Bool:      "bool",
}

// String returns the type name used in wire tags and XML's __type attribute.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// ElemSize reports the encoded size in bytes of a single array element of
// this kind, or 0 for variable-length kinds (Bin, Str) and Void.
func (k Kind) ElemSize() int {
	switch k {
	case S8, U8, Bool:
		return 1
	case S16, U16:
		return 2
	case S32, U32, IP4, Time, Float:
		return 4
	case S64, U64:
		return 8
	case Pair2S8:
		return 2
	case Triple3S8:
		return 3
	case Quad4U8:
		return 4
	case Pair2S16:
		return 4
	case Triple3S16:
		return 6
	case Quad4S16:
		return 8
	case Pair2S32:
		return 8
	case Triple3S32:
		return 12
	case Quad4S32:
		return 16
	case Pair2S64:
		return 16
	case Triple3S64:
		return 24
	case Quad4S64:
		return 32
	default:
		return 0
	}
}

// attr is a single ordered attribute entry.
type attr struct {
	key string
	val string
}

// Node is a tagged tree vertex. The zero Node is not valid; use the
// constructors below.
type Node struct {
	name     string
	kind     Kind
	isArray  bool
	value    Value
	attrs    []attr
	children []*Node
}

// Void constructs a node carrying no value.
func Void(name string) *Node {
	return &Node{name: name, kind: Void}
}

// Scalar constructs a node carrying a single value of the given kind.
func Scalar(name string, kind Kind, value Value) *Node {
	return &Node{name: name, kind: kind, value: value}
}

// Array constructs a node carrying an ordered array of values of the given
// kind.
func Array(name string, kind Kind, values Value) *Node {
	return &Node{name: name, kind: kind, isArray: true, value: values}
}

// Name returns the node's identifier.
func (n *Node) Name() string { return n.name }

// Kind returns the node's primitive type, or Void.
func (n *Node) Kind() Kind { return n.kind }

// IsArray reports whether the node's value is an array rather than a scalar.
func (n *Node) IsArray() bool { return n.isArray }

// Value returns the node's scalar or array value. Meaningless for Void nodes.
func (n *Node) Value() Value { return n.value }

// SetValue replaces the node's value and array-ness in place.
func (n *Node) SetValue(kind Kind, isArray bool, value Value) {
	n.kind = kind
	n.isArray = isArray
	n.value = value
}

// SetAttribute sets an attribute, preserving insertion order on first set and
// updating in place on repeated sets of the same key.
func (n *Node) SetAttribute(key, val string) {
	for i := range n.attrs {
		if n.attrs[i].key == key {
			n.attrs[i].val = val
			return
		}
	}
	n.attrs = append(n.attrs, attr{key, val})
}

// Attribute returns the named attribute's value, or def if absent.
func (n *Node) Attribute(key string, def ...string) string {
	for _, a := range n.attrs {
		if a.key == key {
			return a.val
		}
	}
	if len(def) > 0 {
		return def[0]
	}
	return ""
}

// HasAttribute reports whether key has been set on this node.
func (n *Node) HasAttribute(key string) bool {
	for _, a := range n.attrs {
		if a.key == key {
			return true
		}
	}
	return false
}

// Attributes returns the node's attributes in insertion order. The returned
// slice must not be mutated.
func (n *Node) Attributes() []Attribute {
	out := make([]Attribute, len(n.attrs))
	for i, a := range n.attrs {
		out[i] = Attribute{Key: a.key, Value: a.val}
	}
	return out
}

// Attribute is a read-only view of a single ordered attribute pair.
type Attribute struct {
	Key   string
	Value string
}

// AddChild appends a child node.
func (n *Node) AddChild(c *Node) {
	n.children = append(n.children, c)
}

// Children returns the node's children in document order. The returned
// slice must not be mutated.
func (n *Node) Children() []*Node { return n.children }

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Value is a tagged union over every representation a Node's value may take.
// Exactly one field is meaningful, selected by the owning Node's Kind and
// IsArray.
type Value struct {
	S8     int8
	U8     uint8
	S16    int16
	U16    uint16
	S32    int32
	U32    uint32
	S64    int64
	U64    uint64
	Bin    []byte
	Str    string
	IP4    netip.Addr
	Time   int32
	Float  float32
	Bool   bool
	Fixed  []int64 // backing store for the 2s8..4s64 fixed-arity tuple kinds

	ArrS8   []int8
	ArrU8   []uint8
	ArrS16  []int16
	ArrU16  []uint16
	ArrS32  []int32
	ArrU32  []uint32
	ArrS64  []int64
	ArrU64  []uint64
	ArrBin  [][]byte
	ArrStr  []string
	ArrIP4  []netip.Addr
	ArrTime []int32
	ArrFloat []float32
	ArrBool []bool
	ArrFixed [][]int64
}
