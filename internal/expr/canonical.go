package expr

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// DomainPredicate is the domain prefix mixed into predicate fingerprints.
// The version suffix allows the encoding to change without collisions.
const DomainPredicate = "rowfilter/predicate/v1"

// Fingerprint computes the content-addressed identity of a tree:
// SHA256(domain + 0x00 + canonical JSON), hex encoded.
// Two trees share a fingerprint iff they have the same shape, names,
// declared types and constant values.
func Fingerprint(n Node) (string, error) {
	canonical, err := MarshalCanonical(n)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(DomainPredicate))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MarshalCanonical encodes a tree as canonical JSON:
// object keys in UTF-16 code unit order, strings NFC normalized, no HTML
// escaping, no insignificant whitespace. Constant values are encoded as their
// declared type name plus literal text, so floats never reach the encoder.
func MarshalCanonical(n Node) ([]byte, error) {
	obj, err := toCanonical(n)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeCanonical(&buf, obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toCanonical(n Node) (any, error) {
	if IsNilNode(n) {
		return nil, nil
	}
	switch e := n.(type) {
	case *LambdaExpr:
		params := make([]any, len(e.Params))
		for i, p := range e.Params {
			if p == nil {
				return nil, fmt.Errorf("lambda parameter %d is nil", i)
			}
			params[i] = p.Name
		}
		body, err := toCanonical(e.Body)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": string(e.Kind()), "params": params, "body": body}, nil
	case *ParamExpr:
		return map[string]any{"kind": string(e.Kind()), "name": e.Name}, nil
	case *UnaryExpr:
		x, err := toCanonical(e.X)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": string(e.Op), "x": x}, nil
	case *BinaryExpr:
		left, err := toCanonical(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := toCanonical(e.Right)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": string(e.Op), "left": left, "right": right}, nil
	case *MemberExpr:
		x, err := toCanonical(e.X)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": string(e.Kind()), "name": e.Name, "x": x}, nil
	case *ConstExpr:
		obj := map[string]any{"kind": string(e.Kind()), "type": typeName(e)}
		if !e.IsNull() {
			obj["value"] = FormatValue(e.Value)
			// int32(1) declared as int64 formats like int64(1) but binds differently.
			if vt := reflect.TypeOf(e.Value); vt != e.Type {
				obj["value_type"] = vt.String()
			}
		}
		return obj, nil
	case *CallExpr:
		args := make([]any, len(e.Args))
		for i, a := range e.Args {
			v, err := toCanonical(a)
			if err != nil {
				return nil, fmt.Errorf("call %s argument %d: %w", e.Method, i, err)
			}
			args[i] = v
		}
		x, err := toCanonical(e.X)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": string(e.Kind()), "method": e.Method, "x": x, "args": args}, nil
	default:
		return nil, fmt.Errorf("unsupported node type: %T", n)
	}
}

func typeName(e *ConstExpr) string {
	if e.Type == nil {
		return ""
	}
	return e.Type.String()
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case string:
		writeCanonicalString(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, compareUTF16)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonicalString(buf, k)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("object[%q]: %w", k, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported canonical type: %T", v)
	}
	return nil
}

// writeCanonicalString escapes only quote, backslash and control characters.
func writeCanonicalString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range norm.NFC.String(s) {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteString(strconv.FormatInt(int64(r)>>4, 16))
				buf.WriteString(strconv.FormatInt(int64(r)&0xF, 16))
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

// compareUTF16 orders keys by UTF-16 code units (RFC 8785), which differs
// from Go's byte-wise string order outside the BMP.
func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
