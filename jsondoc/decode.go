// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxDepth is the deepest nesting of objects and arrays Parse accepts, matching encoding/json.
const MaxDepth = 10000

var (
	// ErrInvalidUTF8 is returned for documents that are not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")

	// ErrLoneSurrogate is returned for a \u escape of a UTF-16 surrogate that is not part of a valid pair. Such an
	// escape has no UTF-8 representation and could only be written back as U+FFFD.
	ErrLoneSurrogate = errors.New("unpaired UTF-16 surrogate escape")

	// ErrTooDeep is returned when objects and arrays nest deeper than MaxDepth.
	ErrTooDeep = errors.New("exceeded max depth")
)

// Parse reads a single JSON document from r. Object members are kept in document order, duplicate keys included,
// and numbers keep their literal text. Anything other than whitespace after the document is an error, as is any
// text that could not be written back unchanged: invalid UTF-8 and unpaired surrogate escapes.
func Parse(r io.Reader) (*Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(b)
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(b []byte) (*Value, error) {
	if err := checkText(b); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	v, err := parseValue(dec, 0)
	if err != nil {
		return nil, err
	}

	tok, err := dec.Token()
	if err == nil {
		return nil, fmt.Errorf("unexpected %v after top-level value at offset %d", tok, dec.InputOffset())
	}
	if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value: %w", err)
	}
	return v, nil
}

// checkText rejects input that the decoder would silently replace with U+FFFD.
func checkText(b []byte) error {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Errorf("%w at offset %d", ErrInvalidUTF8, i)
		}
		i += size
	}

	inString := false
	for i := 0; i < len(b); i++ {
		switch {
		case !inString:
			inString = b[i] == '"'
		case b[i] == '"':
			inString = false
		case b[i] == '\\':
			if i+1 < len(b) && b[i+1] == 'u' {
				n, err := surrogateEscape(b, i)
				if err != nil {
					return err
				}
				i += n - 1
			} else {
				// Skip the escaped character so an escaped quote does not end the string.
				i++
			}
		}
	}
	return nil
}

// surrogateEscape inspects the \u escape starting at b[i] and returns how many bytes it and, for a surrogate pair,
// its partner occupy. Malformed hex is left for the decoder to report.
func surrogateEscape(b []byte, i int) (int, error) {
	r, ok := hex4(b, i+2)
	if !ok {
		return 2, nil
	}
	switch {
	case 0xDC00 <= r && r <= 0xDFFF:
		return 0, fmt.Errorf("%w at offset %d", ErrLoneSurrogate, i)
	case 0xD800 <= r && r <= 0xDBFF:
		if i+7 < len(b) && b[i+6] == '\\' && b[i+7] == 'u' {
			if low, ok := hex4(b, i+8); ok && 0xDC00 <= low && low <= 0xDFFF {
				return 12, nil
			}
		}
		return 0, fmt.Errorf("%w at offset %d", ErrLoneSurrogate, i)
	default:
		return 6, nil
	}
}

func hex4(b []byte, i int) (rune, bool) {
	if i+4 > len(b) {
		return 0, false
	}
	var r rune
	for _, c := range b[i : i+4] {
		switch {
		case '0' <= c && c <= '9':
			r = r<<4 | rune(c-'0')
		case 'a' <= c && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		case 'A' <= c && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		default:
			return 0, false
		}
	}
	return r, true
}

// next reads the next token. The input ending here is always premature, since callers only ask for a token
// when one is required.
func next(dec *json.Decoder) (json.Token, error) {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

// parseValue reads one value; depth is the number of containers already open around it.
func parseValue(dec *json.Decoder, depth int) (*Value, error) {
	tok, err := next(dec)
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if t != '{' && t != '[' {
			return nil, fmt.Errorf("unexpected %q at offset %d", t, dec.InputOffset())
		}
		if depth >= MaxDepth {
			return nil, fmt.Errorf("%w of %d at offset %d", ErrTooDeep, MaxDepth, dec.InputOffset())
		}
		if t == '{' {
			return parseObject(dec, depth+1)
		}
		return parseArray(dec, depth+1)
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unsupported token %T at offset %d", tok, dec.InputOffset())
	}
}

func parseObject(dec *json.Decoder, depth int) (*Value, error) {
	obj := Object()
	for dec.More() {
		tok, err := next(dec)
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key at offset %d, got %v", dec.InputOffset(), tok)
		}

		val, err := parseValue(dec, depth)
		if errors.Is(err, ErrTooDeep) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}
		obj.Append(key, val)
	}
	if err := closing(dec, '}'); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder, depth int) (*Value, error) {
	arr := Array()
	for i := 0; dec.More(); i++ {
		val, err := parseValue(dec, depth)
		if errors.Is(err, ErrTooDeep) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		arr.Push(val)
	}
	if err := closing(dec, ']'); err != nil {
		return nil, err
	}
	return arr, nil
}

func closing(dec *json.Decoder, want json.Delim) error {
	tok, err := next(dec)
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q at offset %d, got %v", want, dec.InputOffset(), tok)
	}
	return nil
}
