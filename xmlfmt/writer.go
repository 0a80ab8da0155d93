// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package xmlfmt

import (
	"strconv"
	"strings"

	"github.com/hiiragi-go/hiiragi/node"
)

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// arrayLen reports the element count of an array value, needed for the
// __count synthetic attribute.
func arrayLen(k node.Kind, v node.Value) int {
	switch k {
	case node.S8:
		return len(v.ArrS8)
	case node.U8:
		return len(v.ArrU8)
	case node.S16:
		return len(v.ArrS16)
	case node.U16:
		return len(v.ArrU16)
	case node.S32:
		return len(v.ArrS32)
	case node.U32:
		return len(v.ArrU32)
	case node.S64:
		return len(v.ArrS64)
	case node.U64:
		return len(v.ArrU64)
	case node.Bin:
		return len(v.ArrBin)
	case node.Str:
		return len(v.ArrStr)
	case node.IP4:
		return len(v.ArrIP4)
	case node.Time:
		return len(v.ArrTime)
	case node.Float:
		return len(v.ArrFloat)
	case node.Bool:
		return len(v.ArrBool)
	default:
		return len(v.ArrFixed)
	}
}

// arrayElementText renders the i'th element of an array value as text,
// using the same per-kind conventions as a scalar of that kind.
func arrayElementText(k node.Kind, v node.Value, i int) (string, error) {
	switch k {
	case node.S8:
		return renderScalarText(k, node.Value{S8: v.ArrS8[i]})
	case node.U8:
		return renderScalarText(k, node.Value{U8: v.ArrU8[i]})
	case node.S16:
		return renderScalarText(k, node.Value{S16: v.ArrS16[i]})
	case node.U16:
		return renderScalarText(k, node.Value{U16: v.ArrU16[i]})
	case node.S32:
		return renderScalarText(k, node.Value{S32: v.ArrS32[i]})
	case node.U32:
		return renderScalarText(k, node.Value{U32: v.ArrU32[i]})
	case node.S64:
		return renderScalarText(k, node.Value{S64: v.ArrS64[i]})
	case node.U64:
		return renderScalarText(k, node.Value{U64: v.ArrU64[i]})
	case node.Bin:
		return renderScalarText(k, node.Value{Bin: v.ArrBin[i]})
	case node.Str:
		return renderScalarText(k, node.Value{Str: v.ArrStr[i]})
	case node.IP4:
		return renderScalarText(k, node.Value{IP4: v.ArrIP4[i]})
	case node.Time:
		return renderScalarText(k, node.Value{Time: v.ArrTime[i]})
	case node.Float:
		return renderScalarText(k, node.Value{Float: v.ArrFloat[i]})
	case node.Bool:
		return renderScalarText(k, node.Value{Bool: v.ArrBool[i]})
	default:
		return renderFixed(v.ArrFixed[i]), nil
	}
}

// writeElement appends n's rendering to sb at the given indent depth.
func writeElement(sb *strings.Builder, n *node.Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteByte('<')
	sb.WriteString(n.Name())
	for _, a := range n.Attributes() {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(a.Value))
		sb.WriteByte('"')
	}

	var items []string
	var inlineText string
	hasInlineText := false

	if n.Kind() != node.Void {
		sb.WriteString(` __type="`)
		sb.WriteString(n.Kind().String())
		sb.WriteByte('"')
		if n.IsArray() {
			count := arrayLen(n.Kind(), n.Value())
			sb.WriteString(` __count="`)
			sb.WriteString(strconv.Itoa(count))
			sb.WriteByte('"')
			if usesNestedItems(n.Kind()) {
				items = make([]string, count)
				for i := 0; i < count; i++ {
					text, err := arrayElementText(n.Kind(), n.Value(), i)
					if err != nil {
						return err
					}
					items[i] = text
				}
			} else {
				parts := make([]string, count)
				for i := 0; i < count; i++ {
					text, err := arrayElementText(n.Kind(), n.Value(), i)
					if err != nil {
						return err
					}
					parts[i] = text
				}
				inlineText = strings.Join(parts, " ")
				hasInlineText = true
			}
		} else {
			text, err := renderScalarText(n.Kind(), n.Value())
			if err != nil {
				return err
			}
			inlineText = text
			hasInlineText = true
		}
	}

	children := n.Children()
	if len(items) == 0 && !hasInlineText && len(children) == 0 {
		sb.WriteString("/>")
		return nil
	}

	sb.WriteByte('>')
	if hasInlineText {
		sb.WriteString(escapeText(inlineText))
	}
	if len(items) > 0 || len(children) > 0 {
		sb.WriteByte('\n')
		childIndent := strings.Repeat("  ", depth+1)
		for _, it := range items {
			sb.WriteString(childIndent)
			sb.WriteString("<item>")
			sb.WriteString(escapeText(it))
			sb.WriteString("</item>\n")
		}
		for _, c := range children {
			if err := writeElement(sb, c, depth+1); err != nil {
				return err
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(indent)
	}
	sb.WriteString("</")
	sb.WriteString(n.Name())
	sb.WriteByte('>')
	return nil
}
