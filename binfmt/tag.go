// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package binfmt

import "github.com/hiiragi-go/hiiragi/node"

// tagForKind and kindForTag mirror spec.md section 3.2's type-byte table.
// Void is handled separately by its caller since it is not representable as
// a node.Kind constant with an ordinary value.

var kindToTag = map[node.Kind]byte{
	node.S8:        0x02,
	node.U8:        0x03,
	node.S16:       0x04,
	node.U16:       0x05,
	node.S32:       0x06,
	node.U32:       0x07,
	node.S64:       0x08,
	node.U64:       0x09,
	node.Bin:       0x0A,
	node.Str:       0x0B,
	node.IP4:       0x0C,
	node.Time:      0x0D,
	node.Float:     0x0E,
	node.Pair2S8:   0x0F,
	node.Triple3S8: 0x10,
	node.Quad4U8:   0x11,
	node.Pair2S16:  0x12,
	node.Triple3S16: 0x13,
	node.Quad4S16:  0x14,
	node.Pair2S32:  0x15,
	node.Triple3S32: 0x16,
	node.Quad4S32:  0x17,
	node.Pair2S64:  0x18,
	node.Triple3S64: 0x19,
	node.Quad4S64:  0x1A,
	node.Bool:      0x1B,
}

var tagToKind map[byte]node.Kind

func init() {
	tagToKind = make(map[byte]node.Kind, len(kindToTag))
	for k, t := range kindToTag {
		tagToKind[t] = k
	}
}

func tagForKind(k node.Kind) (byte, bool) {
	t, ok := kindToTag[k]
	return t, ok
}

func kindForTag(t byte) (node.Kind, bool) {
	k, ok := tagToKind[t]
	return k, ok
}
