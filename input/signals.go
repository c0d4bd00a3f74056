package input

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Signals is an ordered mapping from signal name to value, one per fold
// step. Iteration order is the order of the source JSON document; the
// witness generator is fed signals in that same order.
type Signals struct {
	names  []string
	values map[string]Value
}

// Len returns the number of signals.
func (s *Signals) Len() int { return len(s.names) }

// Names returns the signal names in document order. The returned slice is
// owned by the receiver.
func (s *Signals) Names() []string { return s.names }

// Get returns the value bound to name.
func (s *Signals) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Set binds name to v, appending name to the order if it is new.
func (s *Signals) Set(name string, v Value) {
	if s.values == nil {
		s.values = make(map[string]Value)
	}
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = v
}

// Clone returns an independent copy sharing no state with the receiver.
func (s *Signals) Clone() Signals {
	var c Signals
	for _, name := range s.names {
		c.Set(name, s.values[name])
	}
	return c
}

// Delete removes name from the mapping, preserving the order of the rest.
func (s *Signals) Delete(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

func (s *Signals) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	*s = Signals{values: make(map[string]Value)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name := keyTok.(string)
		v, err := decodeValue(dec)
		if err != nil {
			return fmt.Errorf("signal %q: %w", name, err)
		}
		s.Set(name, v)
	}
	// consume the closing '}'
	_, err = dec.Token()
	return err
}

func (s *Signals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := s.values[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
