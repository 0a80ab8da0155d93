// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package xmlfmt

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/hiiragi-go/hiiragi/charset"
	"github.com/hiiragi-go/hiiragi/node"
)

func TestVoidAttributeExactForm(t *testing.T) {
	n := node.Void("services")
	n.SetAttribute("method", "get")
	n.SetAttribute("status", "0")

	out, err := Encode(n, charset.UTF8)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(out), `<services method="get" status="0"/>`) {
		t.Fatalf("unexpected rendering:\n%s", out)
	}

	got, cs, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cs != charset.UTF8 {
		t.Fatalf("charset = %v, want UTF8", cs)
	}
	if got.Name() != "services" || got.Kind() != node.Void {
		t.Fatalf("got %+v", got)
	}
	if got.Attribute("method") != "get" || got.Attribute("status") != "0" {
		t.Fatalf("attrs not preserved: %+v", got.Attributes())
	}
}

func TestScalarKindsRoundTrip(t *testing.T) {
	ip := netip.MustParseAddr("10.0.0.1")
	root := node.Void("root")
	root.AddChild(node.S8Node("a", -5))
	root.AddChild(node.U32Node("b", 0xDEADBEEF))
	root.AddChild(node.StrNode("c", "hello world"))
	root.AddChild(node.BinNode("d", []byte{0xCA, 0xFE}))
	root.AddChild(node.IP4Node("e", ip))
	root.AddChild(node.BoolNode("f", true))
	root.AddChild(node.FloatNode("g", 1.5))
	root.AddChild(node.FixedNode("h", node.Pair2S32, []int64{-1, 2}))

	out, err := Encode(root, charset.UTF8)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, _, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v\n%s", err, out)
	}

	if v := got.Child("a").Value(); v.S8 != -5 {
		t.Errorf("a = %d", v.S8)
	}
	if v := got.Child("b").Value(); v.U32 != 0xDEADBEEF {
		t.Errorf("b = %x", v.U32)
	}
	if v := got.Child("c").Value(); v.Str != "hello world" {
		t.Errorf("c = %q", v.Str)
	}
	if v := got.Child("d").Value(); string(v.Bin) != "\xCA\xFE" {
		t.Errorf("d = %x", v.Bin)
	}
	if v := got.Child("e").Value(); v.IP4 != ip {
		t.Errorf("e = %v", v.IP4)
	}
	if v := got.Child("f").Value(); v.Bool != true {
		t.Errorf("f = %v", v.Bool)
	}
	if v := got.Child("g").Value(); v.Float != 1.5 {
		t.Errorf("g = %v", v.Float)
	}
	if v := got.Child("h").Value(); len(v.Fixed) != 2 || v.Fixed[0] != -1 || v.Fixed[1] != 2 {
		t.Errorf("h = %v", v.Fixed)
	}
}

func TestArrayBoundarySizes(t *testing.T) {
	for _, n := range []int{0, 1, 2, 255, 256} {
		vals := make([]uint8, n)
		for i := range vals {
			vals[i] = uint8(i)
		}
		root := node.U8ArrayNode("arr", vals)

		out, err := Encode(root, charset.UTF8)
		if err != nil {
			t.Fatalf("n=%d: Encode: %v", n, err)
		}
		got, _, err := Decode(out)
		if err != nil {
			t.Fatalf("n=%d: Decode: %v\n%s", n, err, out)
		}
		if !got.IsArray() || len(got.Value().ArrU8) != n {
			t.Fatalf("n=%d: got %d elements", n, len(got.Value().ArrU8))
		}
		for i, v := range got.Value().ArrU8 {
			if int(v) != i%256 {
				t.Fatalf("n=%d: element %d = %d", n, i, v)
			}
		}
	}
}

func TestFixedArityTupleArrayRoundTrip(t *testing.T) {
	tuples := [][]int64{{1, 2, 3}, {4, 5, 6}, {-7, 8, -9}}
	root := node.FixedArrayNode("tris", node.Triple3S32, tuples)

	out, err := Encode(root, charset.UTF8)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(out), "<item>1 2 3</item>") {
		t.Fatalf("tuple components merged ambiguously:\n%s", out)
	}

	got, _, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v\n%s", err, out)
	}
	if len(got.Value().ArrFixed) != len(tuples) {
		t.Fatalf("got %d tuples, want %d", len(got.Value().ArrFixed), len(tuples))
	}
	for i, want := range tuples {
		got := got.Value().ArrFixed[i]
		if len(got) != len(want) {
			t.Fatalf("tuple %d length = %d", i, len(got))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("tuple %d component %d = %d, want %d", i, j, got[j], want[j])
			}
		}
	}
}

func TestStrArrayRoundTrip(t *testing.T) {
	root := node.StrArrayNode("names", []string{"alice", "bob smith", ""})
	out, err := Encode(root, charset.UTF8)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, _, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v\n%s", err, out)
	}
	want := []string{"alice", "bob smith", ""}
	arr := got.Value().ArrStr
	if len(arr) != len(want) {
		t.Fatalf("got %d strings, want %d", len(arr), len(want))
	}
	for i := range want {
		if arr[i] != want[i] {
			t.Fatalf("element %d = %q, want %q", i, arr[i], want[i])
		}
	}
}

func TestCharsetFidelityShiftJIS(t *testing.T) {
	s := "こんにちは"
	root := node.StrNode("greeting", s)

	out, err := Encode(root, charset.ShiftJIS)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(out), `encoding="Shift_JIS"`) {
		t.Fatalf("prolog missing declared charset:\n%s", out)
	}

	got, cs, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cs != charset.ShiftJIS {
		t.Fatalf("charset = %v, want ShiftJIS", cs)
	}
	if got.Value().Str != s {
		t.Fatalf("got %q, want %q", got.Value().Str, s)
	}
}

func TestEscapingRoundTrip(t *testing.T) {
	root := node.Void("x")
	root.SetAttribute("a", `<tag> & "quoted"`)
	root.AddChild(node.StrNode("t", "<b>&amp;bold</b>"))

	out, err := Encode(root, charset.UTF8)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, _, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v\n%s", err, out)
	}
	if got.Attribute("a") != `<tag> & "quoted"` {
		t.Fatalf("attr = %q", got.Attribute("a"))
	}
	if got.Child("t").Value().Str != "<b>&amp;bold</b>" {
		t.Fatalf("text = %q", got.Child("t").Value().Str)
	}
}

func TestNestedChildrenRoundTrip(t *testing.T) {
	root := node.Void("response")
	svc := node.Void("services")
	svc.SetAttribute("method", "get")
	root.AddChild(svc)
	item := node.Void("item")
	item.SetAttribute("url", "http://example.com/")
	svc.AddChild(item)

	out, err := Encode(root, charset.UTF8)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, _, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v\n%s", err, out)
	}
	child := got.Child("services")
	if child == nil || child.Attribute("method") != "get" {
		t.Fatalf("services child missing or wrong: %+v", got.Children())
	}
	grandchild := child.Child("item")
	if grandchild == nil || grandchild.Attribute("url") != "http://example.com/" {
		t.Fatalf("item grandchild missing or wrong")
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	_, _, err := Decode([]byte(`<?xml encoding="UTF-8" ?>` + "\n" + `<a><b></a>`))
	if err != ErrMalformed {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestDecodeRejectsUnknownCharset(t *testing.T) {
	_, _, err := Decode([]byte(`<?xml encoding="bogus-9000" ?>` + "\n" + `<a/>`))
	if err != ErrUnknownCharset {
		t.Fatalf("err = %v, want ErrUnknownCharset", err)
	}
}
