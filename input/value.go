package input

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Value is a signal assignment: either a single scalar of the bn254 scalar
// field or a nested array of values. Scalars are encoded in JSON as decimal
// strings (circom convention); bare numbers are accepted on input.
type Value struct {
	scalar fr.Element
	list   []Value
	isList bool
}

// Scalar returns the underlying field element if the value is a scalar.
func (v Value) Scalar() (fr.Element, bool) {
	return v.scalar, !v.isList
}

// List returns the nested values if the value is an array.
func (v Value) List() ([]Value, bool) {
	return v.list, v.isList
}

// NewScalar wraps a field element.
func NewScalar(e fr.Element) Value {
	return Value{scalar: e}
}

// NewList wraps a slice of values.
func NewList(vs []Value) Value {
	return Value{list: vs, isList: true}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	parsed, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.isList {
		return json.Marshal(v.scalar.String())
	}
	out := make([]json.RawMessage, len(v.list))
	for i := range v.list {
		var err error
		if out[i], err = v.list[i].MarshalJSON(); err != nil {
			return nil, err
		}
	}
	return json.Marshal(out)
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeValueToken(dec, tok)
}

func decodeValueToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case string:
		return parseScalar(t)
	case json.Number:
		return parseScalar(t.String())
	case json.Delim:
		if t != '[' {
			return Value{}, fmt.Errorf("unexpected %q, want scalar or array", t)
		}
		var list []Value
		for dec.More() {
			elem, err := decodeValue(dec)
			if err != nil {
				return Value{}, err
			}
			list = append(list, elem)
		}
		// consume the closing ']'
		if _, err := dec.Token(); err != nil {
			return Value{}, err
		}
		return NewList(list), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v, want scalar or array", tok)
	}
}

func parseScalar(s string) (Value, error) {
	var e fr.Element
	if _, err := e.SetString(s); err != nil {
		return Value{}, fmt.Errorf("invalid field element %q: %w", s, err)
	}
	return NewScalar(e), nil
}
