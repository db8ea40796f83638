package load

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	assure "github.com/sporekit/assure"
)

// ParseJSON loads a registry from its JSON document form. Object key order is
// preserved by walking the token stream instead of decoding into maps, so
// property and rule declaration order survive loading.
func ParseJSON(data []byte) (assure.Registry, error) {
	reg, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// ReadJSON is ParseJSON over an io.Reader.
func ReadJSON(r io.Reader) (assure.Registry, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("load: registry document must be a JSON object")
	}
	doc, err := decodeMembers(dec)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return buildRegistry(doc)
}

func decodeMembers(dec *json.Decoder) ([]member, error) {
	var out []member
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return out, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(dec, vt)
		if err != nil {
			return nil, err
		}
		out = append(out, member{key: key, val: v})
	}
}

func decodeValue(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMembers(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, io.ErrUnexpectedEOF
	case string, bool, json.Number, nil:
		return t, nil
	}
	return nil, io.ErrUnexpectedEOF
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	var out []any
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return out, nil
		}
		v, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}
