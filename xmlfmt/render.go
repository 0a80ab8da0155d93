// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package xmlfmt

import (
	"encoding/hex"
	"net/netip"
	"strconv"
	"strings"

	"github.com/hiiragi-go/hiiragi/node"
)

// kindByName is the reverse of node.Kind.String, used to reconstruct a kind
// from a __type attribute.
var kindByName = map[string]node.Kind{
	"void": node.Void, "s8": node.S8, "u8": node.U8, "s16": node.S16,
	"u16": node.U16, "s32": node.S32, "u32": node.U32, "s64": node.S64,
	"u64": node.U64, "bin": node.Bin, "str": node.Str, "ip4": node.IP4,
	"time": node.Time, "float": node.Float, "2s8": node.Pair2S8,
	"3s8": node.Triple3S8, "4u8": node.Quad4U8, "2s16": node.Pair2S16,
	"3s16": node.Triple3S16, "4s16": node.Quad4S16, "2s32": node.Pair2S32,
	"3s32": node.Triple3S32, "4s32": node.Quad4S32, "2s64": node.Pair2S64,
	"3s64": node.Triple3S64, "4s64": node.Quad4S64, "bool": node.Bool,
}

// Fixed-arity tuple kinds take their arity from node.Kind.FixedArity; text
// rendering needs no per-component byte width.

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// renderScalarText renders a single value's text form. For fixed-arity
// tuples, v.Fixed holds the whole tuple and is rendered as space-separated
// components by renderFixed.
func renderScalarText(k node.Kind, v node.Value) (string, error) {
	switch k {
	case node.S8:
		return strconv.FormatInt(int64(v.S8), 10), nil
	case node.U8:
		return strconv.FormatUint(uint64(v.U8), 10), nil
	case node.S16:
		return strconv.FormatInt(int64(v.S16), 10), nil
	case node.U16:
		return strconv.FormatUint(uint64(v.U16), 10), nil
	case node.S32:
		return strconv.FormatInt(int64(v.S32), 10), nil
	case node.U32:
		return strconv.FormatUint(uint64(v.U32), 10), nil
	case node.S64:
		return strconv.FormatInt(v.S64, 10), nil
	case node.U64:
		return strconv.FormatUint(v.U64, 10), nil
	case node.Bin:
		return strings.ToUpper(hex.EncodeToString(v.Bin)), nil
	case node.Str:
		return v.Str, nil
	case node.IP4:
		return v.IP4.String(), nil
	case node.Time:
		return strconv.FormatInt(int64(v.Time), 10), nil
	case node.Float:
		return formatFloat(v.Float), nil
	case node.Bool:
		if v.Bool {
			return "1", nil
		}
		return "0", nil
	default:
		if k.FixedArity() == 0 {
			return "", ErrUnknownType
		}
		return renderFixed(v.Fixed), nil
	}
}

func renderFixed(components []int64) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = strconv.FormatInt(c, 10)
	}
	return strings.Join(parts, " ")
}

func parseScalarText(k node.Kind, text string) (node.Value, error) {
	switch k {
	case node.S8:
		n, err := strconv.ParseInt(text, 10, 8)
		return node.Value{S8: int8(n)}, wrapParse(err)
	case node.U8:
		n, err := strconv.ParseUint(text, 10, 8)
		return node.Value{U8: uint8(n)}, wrapParse(err)
	case node.S16:
		n, err := strconv.ParseInt(text, 10, 16)
		return node.Value{S16: int16(n)}, wrapParse(err)
	case node.U16:
		n, err := strconv.ParseUint(text, 10, 16)
		return node.Value{U16: uint16(n)}, wrapParse(err)
	case node.S32:
		n, err := strconv.ParseInt(text, 10, 32)
		return node.Value{S32: int32(n)}, wrapParse(err)
	case node.U32:
		n, err := strconv.ParseUint(text, 10, 32)
		return node.Value{U32: uint32(n)}, wrapParse(err)
	case node.S64:
		n, err := strconv.ParseInt(text, 10, 64)
		return node.Value{S64: n}, wrapParse(err)
	case node.U64:
		n, err := strconv.ParseUint(text, 10, 64)
		return node.Value{U64: n}, wrapParse(err)
	case node.Bin:
		b, err := hex.DecodeString(text)
		return node.Value{Bin: b}, wrapParse(err)
	case node.Str:
		return node.Value{Str: text}, nil
	case node.IP4:
		a, err := netip.ParseAddr(text)
		return node.Value{IP4: a}, wrapParse(err)
	case node.Time:
		n, err := strconv.ParseInt(text, 10, 32)
		return node.Value{Time: int32(n)}, wrapParse(err)
	case node.Float:
		f, err := strconv.ParseFloat(text, 32)
		return node.Value{Float: float32(f)}, wrapParse(err)
	case node.Bool:
		switch text {
		case "1":
			return node.Value{Bool: true}, nil
		case "0":
			return node.Value{Bool: false}, nil
		default:
			return node.Value{}, ErrBadValue
		}
	default:
		arity := k.FixedArity()
		if arity == 0 {
			return node.Value{}, ErrUnknownType
		}
		fields := strings.Fields(text)
		if len(fields) != arity {
			return node.Value{}, ErrBadValue
		}
		out := make([]int64, arity)
		for i, f := range fields {
			n, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return node.Value{}, ErrBadValue
			}
			out[i] = n
		}
		return node.Value{Fixed: out}, nil
	}
}

func wrapParse(err error) error {
	if err != nil {
		return ErrBadValue
	}
	return nil
}

// usesNestedItems reports whether an array of kind k is rendered as nested
// <item> elements rather than a single space-separated text line. Bin and
// Str need it because their own text can contain spaces; fixed-arity tuple
// kinds need it because flattening multiple tuples onto one line would lose
// the boundary between one tuple's components and the next.
func usesNestedItems(k node.Kind) bool {
	return k == node.Bin || k == node.Str || k.FixedArity() > 0
}

// buildArrayValue reconstructs an array Value from the per-element text
// forms produced by either nested <item> content or a space-separated
// inline text line, the inverse of writer.go's arrayElementText.
func buildArrayValue(k node.Kind, texts []string) (node.Value, error) {
	switch k {
	case node.S8:
		out := make([]int8, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.S8
		}
		return node.Value{ArrS8: out}, nil
	case node.U8:
		out := make([]uint8, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.U8
		}
		return node.Value{ArrU8: out}, nil
	case node.S16:
		out := make([]int16, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.S16
		}
		return node.Value{ArrS16: out}, nil
	case node.U16:
		out := make([]uint16, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.U16
		}
		return node.Value{ArrU16: out}, nil
	case node.S32:
		out := make([]int32, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.S32
		}
		return node.Value{ArrS32: out}, nil
	case node.U32:
		out := make([]uint32, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.U32
		}
		return node.Value{ArrU32: out}, nil
	case node.S64:
		out := make([]int64, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.S64
		}
		return node.Value{ArrS64: out}, nil
	case node.U64:
		out := make([]uint64, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.U64
		}
		return node.Value{ArrU64: out}, nil
	case node.Bin:
		out := make([][]byte, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.Bin
		}
		return node.Value{ArrBin: out}, nil
	case node.Str:
		out := make([]string, len(texts))
		copy(out, texts)
		return node.Value{ArrStr: out}, nil
	case node.IP4:
		out := make([]netip.Addr, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.IP4
		}
		return node.Value{ArrIP4: out}, nil
	case node.Time:
		out := make([]int32, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.Time
		}
		return node.Value{ArrTime: out}, nil
	case node.Float:
		out := make([]float32, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.Float
		}
		return node.Value{ArrFloat: out}, nil
	case node.Bool:
		out := make([]bool, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.Bool
		}
		return node.Value{ArrBool: out}, nil
	default:
		if k.FixedArity() == 0 {
			return node.Value{}, ErrUnknownType
		}
		out := make([][]int64, len(texts))
		for i, t := range texts {
			v, err := parseScalarText(k, t)
			if err != nil {
				return node.Value{}, err
			}
			out[i] = v.Fixed
		}
		return node.Value{ArrFixed: out}, nil
	}
}
