// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package binfmt implements the binary node-tree serializer: a structure
// segment describing shape (types, names, attribute names, nesting) followed
// by a data segment carrying values in document order, per spec.md section
// 4.C.
package binfmt

import (
	"bytes"
	"encoding/binary"
	"math"
	"net/netip"

	"github.com/hiiragi-go/hiiragi/charset"
	"github.com/hiiragi-go/hiiragi/node"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "binfmt: " + string(e) }

var (
	// ErrBadMagic is returned when the first byte of a document is not the
	// binary marker 0xA0.
	ErrBadMagic error = Error("bad magic byte")

	// ErrUnknownCharset is returned when the charset magic byte does not
	// resolve to a known charset.Charset.
	ErrUnknownCharset error = Error("unknown charset magic byte")

	// ErrUnknownType is returned on a structure-segment type byte with no
	// corresponding node.Kind.
	ErrUnknownType error = Error("unknown type tag")

	// ErrTruncated is returned when a segment ends before a token or value
	// it has already started is fully consumed.
	ErrTruncated error = Error("truncated segment")

	// ErrBadName is returned when a 6-bit name token contains a code point
	// outside the name alphabet.
	ErrBadName error = Error("invalid 6-bit name encoding")
)

const (
	magicByte    byte = 0xA0
	attrMarker   byte = 0xFE
	endMarker    byte = 0xFF
	arrayBit     byte = 0x40
	voidTypeByte byte = 0x01
)

func pad4(buf *bytes.Buffer) {
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
}

// Encode renders tree as a binary document using cs for str values and
// attribute values.
func Encode(tree *node.Node, cs charset.Charset) ([]byte, error) {
	var structSeg bytes.Buffer
	if err := writeStructure(&structSeg, tree); err != nil {
		return nil, err
	}
	pad4(&structSeg)

	var dataSeg bytes.Buffer
	if err := writeNodeValues(&dataSeg, tree, cs); err != nil {
		return nil, err
	}
	if err := writeAttributeValues(&dataSeg, tree, cs); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.WriteByte(magicByte)
	out.WriteByte(cs.MagicByte())
	out.Write([]byte{0x00, 0x00})
	var sizeHdr [4]byte
	binary.BigEndian.PutUint32(sizeHdr[:], uint32(structSeg.Len()))
	out.Write(sizeHdr[:])
	out.Write(structSeg.Bytes())
	out.Write(dataSeg.Bytes())
	return out.Bytes(), nil
}

// Decode parses a binary document, returning the reconstructed tree and the
// charset it was encoded with.
func Decode(data []byte) (*node.Node, charset.Charset, error) {
	if len(data) < 8 || data[0] != magicByte {
		return nil, 0, ErrBadMagic
	}
	cs, ok := charset.FromMagicByte(data[1])
	if !ok {
		return nil, 0, ErrUnknownCharset
	}
	structSize := binary.BigEndian.Uint32(data[4:8])
	if uint32(len(data)-8) < structSize {
		return nil, 0, ErrTruncated
	}
	structSeg := data[8 : 8+structSize]
	dataSeg := data[8+structSize:]

	sr := &structReader{buf: structSeg}
	tree, err := sr.readNode()
	if err != nil {
		return nil, 0, err
	}

	dr := &dataReader{buf: dataSeg, cs: cs}
	if err := dr.readNodeValues(tree); err != nil {
		return nil, 0, err
	}
	if err := dr.readAttributeValues(tree); err != nil {
		return nil, 0, err
	}
	return tree, cs, nil
}

func writeStructure(w *bytes.Buffer, n *node.Node) error {
	var typeByte byte
	if n.Kind() == node.Void {
		typeByte = voidTypeByte
	} else {
		tb, ok := tagForKind(n.Kind())
		if !ok {
			return ErrUnknownType
		}
		typeByte = tb
	}
	if n.IsArray() {
		typeByte |= arrayBit
	}
	w.WriteByte(typeByte)
	if err := writeName(w, n.Name()); err != nil {
		return err
	}
	for _, a := range n.Attributes() {
		w.WriteByte(attrMarker)
		if err := writeName(w, a.Key); err != nil {
			return err
		}
	}
	for _, c := range n.Children() {
		if err := writeStructure(w, c); err != nil {
			return err
		}
	}
	w.WriteByte(endMarker)
	return nil
}

func writeName(w *bytes.Buffer, name string) error {
	if len(name) > 63 {
		return node.ErrBadName
	}
	w.WriteByte(byte(len(name)))
	packed, err := packName(name)
	if err != nil {
		return err
	}
	w.Write(packed)
	return nil
}

// structReader walks the structure segment rebuilding node shape (name,
// kind, array-ness, attribute names, children) without values.
type structReader struct {
	buf []byte
	pos int
}

func (r *structReader) readByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrTruncated
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *structReader) readName() (string, error) {
	n, err := r.readByte()
	if err != nil {
		return "", err
	}
	width := packedLen(int(n))
	if r.pos+width > len(r.buf) {
		return "", ErrTruncated
	}
	name, err := unpackName(r.buf[r.pos:r.pos+width], int(n))
	r.pos += width
	return name, err
}

func (r *structReader) readNode() (*node.Node, error) {
	typeByte, err := r.readByte()
	if err != nil {
		return nil, err
	}
	isArray := typeByte&arrayBit != 0
	kindByte := typeByte &^ arrayBit

	name, err := r.readName()
	if err != nil {
		return nil, err
	}

	var n *node.Node
	if kindByte == voidTypeByte {
		n = node.Void(name)
	} else {
		kind, ok := kindForTag(kindByte)
		if !ok {
			return nil, ErrUnknownType
		}
		if isArray {
			n = node.Array(name, kind, node.Value{})
		} else {
			n = node.Scalar(name, kind, node.Value{})
		}
	}

	for {
		peek, err := r.readByte()
		if err != nil {
			return nil, err
		}
		switch peek {
		case attrMarker:
			key, err := r.readName()
			if err != nil {
				return nil, err
			}
			if n.HasAttribute(key) {
				return nil, node.ErrDuplicateAttribute
			}
			n.SetAttribute(key, "")
		case endMarker:
			return n, nil
		default:
			r.pos--
			child, err := r.readNode()
			if err != nil {
				return nil, err
			}
			n.AddChild(child)
		}
	}
}

func writeNodeValues(w *bytes.Buffer, n *node.Node, cs charset.Charset) error {
	if n.Kind() != node.Void {
		if err := writeValue(w, n, cs); err != nil {
			return err
		}
	}
	for _, c := range n.Children() {
		if err := writeNodeValues(w, c, cs); err != nil {
			return err
		}
	}
	return nil
}

func writeAttributeValues(w *bytes.Buffer, n *node.Node, cs charset.Charset) error {
	for _, a := range n.Attributes() {
		enc, err := charset.Encode(cs, a.Value)
		if err != nil {
			return err
		}
		writeLenPrefixed(w, enc)
		pad4(w)
	}
	for _, c := range n.Children() {
		if err := writeAttributeValues(w, c, cs); err != nil {
			return err
		}
	}
	return nil
}

func writeLenPrefixed(w *bytes.Buffer, b []byte) {
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(b)))
	w.Write(hdr[:])
	w.Write(b)
}

func writeValue(w *bytes.Buffer, n *node.Node, cs charset.Charset) error {
	if n.IsArray() {
		elems, err := arrayElementBytes(n.Kind(), n.Value(), cs)
		if err != nil {
			return err
		}
		var body bytes.Buffer
		for _, e := range elems {
			body.Write(e)
		}
		var hdr [4]byte
		binary.BigEndian.PutUint32(hdr[:], uint32(body.Len()))
		w.Write(hdr[:])
		w.Write(body.Bytes())
	} else {
		b, err := scalarElementBytes(n.Kind(), n.Value(), cs)
		if err != nil {
			return err
		}
		w.Write(b)
	}
	pad4(w)
	return nil
}

func componentWidth(k node.Kind) int {
	switch k {
	case node.Pair2S8, node.Triple3S8, node.Quad4U8:
		return 1
	case node.Pair2S16, node.Triple3S16, node.Quad4S16:
		return 2
	case node.Pair2S32, node.Triple3S32, node.Quad4S32:
		return 4
	case node.Pair2S64, node.Triple3S64, node.Quad4S64:
		return 8
	default:
		return 0
	}
}

func writeFixed(w *bytes.Buffer, width int, v []int64) {
	for _, x := range v {
		switch width {
		case 1:
			w.WriteByte(byte(x))
		case 2:
			var b [2]byte
			binary.BigEndian.PutUint16(b[:], uint16(x))
			w.Write(b[:])
		case 4:
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(x))
			w.Write(b[:])
		case 8:
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(x))
			w.Write(b[:])
		}
	}
}

// scalarElementBytes returns the self-contained wire representation of a
// single scalar value: fixed-width kinds are exactly ElemSize() bytes, bin
// and str are u32-length-prefixed.
func scalarElementBytes(k node.Kind, v node.Value, cs charset.Charset) ([]byte, error) {
	var b bytes.Buffer
	switch k {
	case node.S8:
		b.WriteByte(byte(v.S8))
	case node.U8:
		b.WriteByte(v.U8)
	case node.S16:
		var h [2]byte
		binary.BigEndian.PutUint16(h[:], uint16(v.S16))
		b.Write(h[:])
	case node.U16:
		var h [2]byte
		binary.BigEndian.PutUint16(h[:], v.U16)
		b.Write(h[:])
	case node.S32:
		var h [4]byte
		binary.BigEndian.PutUint32(h[:], uint32(v.S32))
		b.Write(h[:])
	case node.U32:
		var h [4]byte
		binary.BigEndian.PutUint32(h[:], v.U32)
		b.Write(h[:])
	case node.S64:
		var h [8]byte
		binary.BigEndian.PutUint64(h[:], uint64(v.S64))
		b.Write(h[:])
	case node.U64:
		var h [8]byte
		binary.BigEndian.PutUint64(h[:], v.U64)
		b.Write(h[:])
	case node.Bin:
		writeLenPrefixed(&b, v.Bin)
	case node.Str:
		enc, err := charset.Encode(cs, v.Str)
		if err != nil {
			return nil, err
		}
		writeLenPrefixed(&b, enc)
	case node.IP4:
		a4 := v.IP4.As4()
		b.Write(a4[:])
	case node.Time:
		var h [4]byte
		binary.BigEndian.PutUint32(h[:], uint32(v.Time))
		b.Write(h[:])
	case node.Float:
		var h [4]byte
		binary.BigEndian.PutUint32(h[:], math.Float32bits(v.Float))
		b.Write(h[:])
	case node.Bool:
		if v.Bool {
			b.WriteByte(1)
		} else {
			b.WriteByte(0)
		}
	default:
		if width := componentWidth(k); width > 0 {
			writeFixed(&b, width, v.Fixed)
		} else {
			return nil, ErrUnknownType
		}
	}
	return b.Bytes(), nil
}

// arrayElementBytes returns the self-contained wire representation of every
// element of an array value, in order.
func arrayElementBytes(k node.Kind, v node.Value, cs charset.Charset) ([][]byte, error) {
	switch k {
	case node.S8:
		out := make([][]byte, len(v.ArrS8))
		for i, x := range v.ArrS8 {
			out[i] = []byte{byte(x)}
		}
		return out, nil
	case node.U8:
		out := make([][]byte, len(v.ArrU8))
		for i, x := range v.ArrU8 {
			out[i] = []byte{x}
		}
		return out, nil
	case node.S16:
		out := make([][]byte, len(v.ArrS16))
		for i, x := range v.ArrS16 {
			var h [2]byte
			binary.BigEndian.PutUint16(h[:], uint16(x))
			out[i] = h[:]
		}
		return out, nil
	case node.U16:
		out := make([][]byte, len(v.ArrU16))
		for i, x := range v.ArrU16 {
			var h [2]byte
			binary.BigEndian.PutUint16(h[:], x)
			out[i] = h[:]
		}
		return out, nil
	case node.S32:
		out := make([][]byte, len(v.ArrS32))
		for i, x := range v.ArrS32 {
			var h [4]byte
			binary.BigEndian.PutUint32(h[:], uint32(x))
			out[i] = h[:]
		}
		return out, nil
	case node.U32:
		out := make([][]byte, len(v.ArrU32))
		for i, x := range v.ArrU32 {
			var h [4]byte
			binary.BigEndian.PutUint32(h[:], x)
			out[i] = h[:]
		}
		return out, nil
	case node.S64:
		out := make([][]byte, len(v.ArrS64))
		for i, x := range v.ArrS64 {
			var h [8]byte
			binary.BigEndian.PutUint64(h[:], uint64(x))
			out[i] = h[:]
		}
		return out, nil
	case node.U64:
		out := make([][]byte, len(v.ArrU64))
		for i, x := range v.ArrU64 {
			var h [8]byte
			binary.BigEndian.PutUint64(h[:], x)
			out[i] = h[:]
		}
		return out, nil
	case node.Bin:
		out := make([][]byte, len(v.ArrBin))
		for i, x := range v.ArrBin {
			var b bytes.Buffer
			writeLenPrefixed(&b, x)
			out[i] = b.Bytes()
		}
		return out, nil
	case node.Str:
		out := make([][]byte, len(v.ArrStr))
		for i, s := range v.ArrStr {
			enc, err := charset.Encode(cs, s)
			if err != nil {
				return nil, err
			}
			var b bytes.Buffer
			writeLenPrefixed(&b, enc)
			out[i] = b.Bytes()
		}
		return out, nil
	case node.IP4:
		out := make([][]byte, len(v.ArrIP4))
		for i, a := range v.ArrIP4 {
			a4 := a.As4()
			out[i] = append([]byte(nil), a4[:]...)
		}
		return out, nil
	case node.Time:
		out := make([][]byte, len(v.ArrTime))
		for i, x := range v.ArrTime {
			var h [4]byte
			binary.BigEndian.PutUint32(h[:], uint32(x))
			out[i] = h[:]
		}
		return out, nil
	case node.Float:
		out := make([][]byte, len(v.ArrFloat))
		for i, x := range v.ArrFloat {
			var h [4]byte
			binary.BigEndian.PutUint32(h[:], math.Float32bits(x))
			out[i] = h[:]
		}
		return out, nil
	case node.Bool:
		out := make([][]byte, len(v.ArrBool))
		for i, x := range v.ArrBool {
			if x {
				out[i] = []byte{1}
			} else {
				out[i] = []byte{0}
			}
		}
		return out, nil
	default:
		width := componentWidth(k)
		if width == 0 {
			return nil, ErrUnknownType
		}
		out := make([][]byte, len(v.ArrFixed))
		for i, tuple := range v.ArrFixed {
			var b bytes.Buffer
			writeFixed(&b, width, tuple)
			out[i] = b.Bytes()
		}
		return out, nil
	}
}

// dataReader walks the data segment, binding values onto an already-shaped
// tree in the same document order the structure segment was written in.
type dataReader struct {
	buf []byte
	pos int
	cs  charset.Charset
}

func (r *dataReader) readLenPrefixed() ([]byte, error) {
	if r.pos+4 > len(r.buf) {
		return nil, ErrTruncated
	}
	n := binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	if uint32(len(r.buf)-r.pos) < n {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

func (r *dataReader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *dataReader) padTo4() {
	if m := r.pos % 4; m != 0 {
		r.pos += 4 - m
	}
}

func (r *dataReader) readNodeValues(n *node.Node) error {
	if n.Kind() != node.Void {
		if err := r.readValue(n); err != nil {
			return err
		}
	}
	for _, c := range n.Children() {
		if err := r.readNodeValues(c); err != nil {
			return err
		}
	}
	return nil
}

func (r *dataReader) readAttributeValues(n *node.Node) error {
	for _, a := range n.Attributes() {
		enc, err := r.readLenPrefixed()
		if err != nil {
			return err
		}
		r.padTo4()
		dec, err := charset.Decode(r.cs, enc)
		if err != nil {
			return err
		}
		n.SetAttribute(a.Key, dec)
	}
	for _, c := range n.Children() {
		if err := r.readAttributeValues(c); err != nil {
			return err
		}
	}
	return nil
}

func (r *dataReader) readValue(n *node.Node) error {
	if n.IsArray() {
		body, err := r.readLenPrefixed()
		if err != nil {
			return err
		}
		r.padTo4()
		v, err := decodeArrayBody(n.Kind(), body, r.cs)
		if err != nil {
			return err
		}
		n.SetValue(n.Kind(), true, v)
		return nil
	}
	v, err := r.readScalar(n.Kind())
	if err != nil {
		return err
	}
	r.padTo4()
	n.SetValue(n.Kind(), false, v)
	return nil
}

func (r *dataReader) readScalar(k node.Kind) (node.Value, error) {
	switch k {
	case node.S8:
		b, err := r.take(1)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{S8: int8(b[0])}, nil
	case node.U8:
		b, err := r.take(1)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{U8: b[0]}, nil
	case node.S16:
		b, err := r.take(2)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{S16: int16(binary.BigEndian.Uint16(b))}, nil
	case node.U16:
		b, err := r.take(2)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{U16: binary.BigEndian.Uint16(b)}, nil
	case node.S32:
		b, err := r.take(4)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{S32: int32(binary.BigEndian.Uint32(b))}, nil
	case node.U32:
		b, err := r.take(4)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{U32: binary.BigEndian.Uint32(b)}, nil
	case node.S64:
		b, err := r.take(8)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{S64: int64(binary.BigEndian.Uint64(b))}, nil
	case node.U64:
		b, err := r.take(8)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{U64: binary.BigEndian.Uint64(b)}, nil
	case node.Bin:
		b, err := r.readLenPrefixed()
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{Bin: append([]byte(nil), b...)}, nil
	case node.Str:
		b, err := r.readLenPrefixed()
		if err != nil {
			return node.Value{}, err
		}
		s, err := charset.Decode(r.cs, b)
		return node.Value{Str: s}, err
	case node.IP4:
		b, err := r.take(4)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{IP4: netip.AddrFrom4([4]byte{b[0], b[1], b[2], b[3]})}, nil
	case node.Time:
		b, err := r.take(4)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{Time: int32(binary.BigEndian.Uint32(b))}, nil
	case node.Float:
		b, err := r.take(4)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{Float: math.Float32frombits(binary.BigEndian.Uint32(b))}, nil
	case node.Bool:
		b, err := r.take(1)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{Bool: b[0] != 0}, nil
	default:
		width := componentWidth(k)
		if width == 0 {
			return node.Value{}, ErrUnknownType
		}
		arity := k.FixedArity()
		b, err := r.take(width * arity)
		if err != nil {
			return node.Value{}, err
		}
		return node.Value{Fixed: decodeFixed(width, arity, b)}, nil
	}
}

func decodeFixed(width, arity int, b []byte) []int64 {
	out := make([]int64, arity)
	for i := 0; i < arity; i++ {
		chunk := b[i*width : (i+1)*width]
		switch width {
		case 1:
			out[i] = int64(int8(chunk[0]))
		case 2:
			out[i] = int64(int16(binary.BigEndian.Uint16(chunk)))
		case 4:
			out[i] = int64(int32(binary.BigEndian.Uint32(chunk)))
		case 8:
			out[i] = int64(binary.BigEndian.Uint64(chunk))
		}
	}
	return out
}

// decodeArrayBody decodes the packed element bytes of an array value (the
// bytes following the array's outer u32 byte-count, already sliced to
// exactly that length).
func decodeArrayBody(k node.Kind, body []byte, cs charset.Charset) (node.Value, error) {
	switch k {
	case node.S8:
		var out []int8
		for _, b := range body {
			out = append(out, int8(b))
		}
		return node.Value{ArrS8: out}, nil
	case node.U8:
		return node.Value{ArrU8: append([]byte(nil), body...)}, nil
	case node.S16:
		var out []int16
		for i := 0; i+2 <= len(body); i += 2 {
			out = append(out, int16(binary.BigEndian.Uint16(body[i:])))
		}
		return node.Value{ArrS16: out}, nil
	case node.U16:
		var out []uint16
		for i := 0; i+2 <= len(body); i += 2 {
			out = append(out, binary.BigEndian.Uint16(body[i:]))
		}
		return node.Value{ArrU16: out}, nil
	case node.S32:
		var out []int32
		for i := 0; i+4 <= len(body); i += 4 {
			out = append(out, int32(binary.BigEndian.Uint32(body[i:])))
		}
		return node.Value{ArrS32: out}, nil
	case node.U32:
		var out []uint32
		for i := 0; i+4 <= len(body); i += 4 {
			out = append(out, binary.BigEndian.Uint32(body[i:]))
		}
		return node.Value{ArrU32: out}, nil
	case node.S64:
		var out []int64
		for i := 0; i+8 <= len(body); i += 8 {
			out = append(out, int64(binary.BigEndian.Uint64(body[i:])))
		}
		return node.Value{ArrS64: out}, nil
	case node.U64:
		var out []uint64
		for i := 0; i+8 <= len(body); i += 8 {
			out = append(out, binary.BigEndian.Uint64(body[i:]))
		}
		return node.Value{ArrU64: out}, nil
	case node.Bin:
		var out [][]byte
		pos := 0
		for pos < len(body) {
			if pos+4 > len(body) {
				return node.Value{}, ErrTruncated
			}
			n := int(binary.BigEndian.Uint32(body[pos:]))
			pos += 4
			if pos+n > len(body) {
				return node.Value{}, ErrTruncated
			}
			out = append(out, append([]byte(nil), body[pos:pos+n]...))
			pos += n
		}
		return node.Value{ArrBin: out}, nil
	case node.Str:
		var out []string
		pos := 0
		for pos < len(body) {
			if pos+4 > len(body) {
				return node.Value{}, ErrTruncated
			}
			n := int(binary.BigEndian.Uint32(body[pos:]))
			pos += 4
			if pos+n > len(body) {
				return node.Value{}, ErrTruncated
			}
			s, err := charset.Decode(cs, body[pos:pos+n])
			if err != nil {
				return node.Value{}, err
			}
			out = append(out, s)
			pos += n
		}
		return node.Value{ArrStr: out}, nil
	case node.IP4:
		var out []netip.Addr
		for i := 0; i+4 <= len(body); i += 4 {
			out = append(out, netip.AddrFrom4([4]byte{body[i], body[i+1], body[i+2], body[i+3]}))
		}
		return node.Value{ArrIP4: out}, nil
	case node.Time:
		var out []int32
		for i := 0; i+4 <= len(body); i += 4 {
			out = append(out, int32(binary.BigEndian.Uint32(body[i:])))
		}
		return node.Value{ArrTime: out}, nil
	case node.Float:
		var out []float32
		for i := 0; i+4 <= len(body); i += 4 {
			out = append(out, math.Float32frombits(binary.BigEndian.Uint32(body[i:])))
		}
		return node.Value{ArrFloat: out}, nil
	case node.Bool:
		var out []bool
		for _, b := range body {
			out = append(out, b != 0)
		}
		return node.Value{ArrBool: out}, nil
	default:
		width := componentWidth(k)
		if width == 0 {
			return node.Value{}, ErrUnknownType
		}
		arity := k.FixedArity()
		stride := width * arity
		var out [][]int64
		for i := 0; i+stride <= len(body); i += stride {
			out = append(out, decodeFixed(width, arity, body[i:i+stride]))
		}
		return node.Value{ArrFixed: out}, nil
	}
}
