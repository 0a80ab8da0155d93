// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package node

import "net/netip"

// Typed convenience constructors. Each wraps Scalar/Array for a single
// primitive kind so that handler code (see plugin/beatstream) never has to
// spell out a Kind and Value literal by hand.

func S8Node(name string, v int8) *Node   { return Scalar(name, S8, Value{S8: v}) }
func U8Node(name string, v uint8) *Node  { return Scalar(name, U8, Value{U8: v}) }
func S16Node(name string, v int16) *Node { return Scalar(name, S16, Value{S16: v}) }
func U16Node(name string, v uint16) *Node { return Scalar(name, U16, Value{U16: v}) }
func S32Node(name string, v int32) *Node { return Scalar(name, S32, Value{S32: v}) }
func U32Node(name string, v uint32) *Node { return Scalar(name, U32, Value{U32: v}) }
func S64Node(name string, v int64) *Node { return Scalar(name, S64, Value{S64: v}) }
func U64Node(name string, v uint64) *Node { return Scalar(name, U64, Value{U64: v}) }
func BinNode(name string, v []byte) *Node { return Scalar(name, Bin, Value{Bin: v}) }
func StrNode(name string, v string) *Node { return Scalar(name, Str, Value{Str: v}) }
func IP4Node(name string, v netip.Addr) *Node { return Scalar(name, IP4, Value{IP4: v}) }
func TimeNode(name string, v int32) *Node { return Scalar(name, Time, Value{Time: v}) }
func FloatNode(name string, v float32) *Node { return Scalar(name, Float, Value{Float: v}) }
func BoolNode(name string, v bool) *Node { return Scalar(name, Bool, Value{Bool: v}) }

func S8ArrayNode(name string, v []int8) *Node   { return Array(name, S8, Value{ArrS8: v}) }
func U8ArrayNode(name string, v []uint8) *Node  { return Array(name, U8, Value{ArrU8: v}) }
func S16ArrayNode(name string, v []int16) *Node { return Array(name, S16, Value{ArrS16: v}) }
func U16ArrayNode(name string, v []uint16) *Node { return Array(name, U16, Value{ArrU16: v}) }
func S32ArrayNode(name string, v []int32) *Node { return Array(name, S32, Value{ArrS32: v}) }
func U32ArrayNode(name string, v []uint32) *Node { return Array(name, U32, Value{ArrU32: v}) }
func S64ArrayNode(name string, v []int64) *Node { return Array(name, S64, Value{ArrS64: v}) }
func U64ArrayNode(name string, v []uint64) *Node { return Array(name, U64, Value{ArrU64: v}) }
func BinArrayNode(name string, v [][]byte) *Node { return Array(name, Bin, Value{ArrBin: v}) }
func StrArrayNode(name string, v []string) *Node { return Array(name, Str, Value{ArrStr: v}) }
func IP4ArrayNode(name string, v []netip.Addr) *Node { return Array(name, IP4, Value{ArrIP4: v}) }
func TimeArrayNode(name string, v []int32) *Node { return Array(name, Time, Value{ArrTime: v}) }
func FloatArrayNode(name string, v []float32) *Node { return Array(name, Float, Value{ArrFloat: v}) }
func BoolArrayNode(name string, v []bool) *Node { return Array(name, Bool, Value{ArrBool: v}) }

// FixedArity returns the tuple arity (2, 3, or 4) for the fixed-size tuple
// kinds (2s8..4s64), or 0 for every other kind.
func (k Kind) FixedArity() int {
	switch k {
	case Pair2S8, Pair2S16, Pair2S32, Pair2S64:
		return 2
	case Triple3S8, Triple3S16, Triple3S32, Triple3S64:
		return 3
	case Quad4U8, Quad4S16, Quad4S32, Quad4S64:
		return 4
	default:
		return 0
	}
}

// FixedNode constructs a scalar node carrying one of the fixed-arity tuple
// kinds (2s8, 3s8, 4u8, 2s16, ... 4s64). v must have length Kind.FixedArity().
func FixedNode(name string, kind Kind, v []int64) *Node {
	return Scalar(name, kind, Value{Fixed: append([]int64(nil), v...)})
}

// FixedArrayNode constructs an array node of the given fixed-arity tuple
// kind. Every element of v must have length kind.FixedArity().
func FixedArrayNode(name string, kind Kind, v [][]int64) *Node {
	cp := make([][]int64, len(v))
	for i, tuple := range v {
		cp[i] = append([]int64(nil), tuple...)
	}
	return Array(name, kind, Value{ArrFixed: cp})
}
