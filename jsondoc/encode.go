// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// MarshalIndent renders v with one member or element per line, each line starting with prefix followed by one
// copy of indent per nesting level. Empty objects and arrays are rendered as {} and [].
func (v *Value) MarshalIndent(prefix, indent string) ([]byte, error) {
	e := newEncodeState(prefix, indent)
	if err := e.value(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// Encode writes v to w using MarshalIndent with no prefix, followed by a newline.
func Encode(w io.Writer, v *Value, indent string) error {
	b, err := v.MarshalIndent("", indent)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

type encodeState struct {
	buf    *bytes.Buffer
	str    *json.Encoder
	prefix string
	indent string
}

func newEncodeState(prefix, indent string) *encodeState {
	buf := new(bytes.Buffer)
	str := json.NewEncoder(buf)
	// Keep <, > and & as-is.
	str.SetEscapeHTML(false)
	return &encodeState{
		buf:    buf,
		str:    str,
		prefix: prefix,
		indent: indent,
	}
}

func (e *encodeState) newline(depth int) {
	e.buf.WriteByte('\n')
	e.buf.WriteString(e.prefix)
	e.buf.WriteString(strings.Repeat(e.indent, depth))
}

func (e *encodeState) value(v *Value, depth int) error {
	switch v.Kind() {
	case NullKind:
		e.buf.WriteString("null")
	case BoolKind:
		if v.boolean {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case NumberKind:
		if v.number == "" {
			return fmt.Errorf("invalid number literal %q", v.number)
		}
		e.buf.WriteString(v.number.String())
	case StringKind:
		return e.quote(v.str)
	case ArrayKind:
		return e.array(v.elems, depth)
	case ObjectKind:
		return e.object(v.members, depth)
	default:
		return fmt.Errorf("unknown value kind %d", v.kind)
	}
	return nil
}

func (e *encodeState) quote(s string) error {
	if err := e.str.Encode(s); err != nil {
		return err
	}
	// json.Encoder terminates every value with a newline.
	e.buf.Truncate(e.buf.Len() - 1)
	return nil
}

func (e *encodeState) array(elems []*Value, depth int) error {
	if len(elems) == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	for i, elem := range elems {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.value(elem, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e *encodeState) object(members []Member, depth int) error {
	if len(members) == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.quote(m.Key); err != nil {
			return err
		}
		e.buf.WriteString(": ")
		if err := e.value(m.Value, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}
