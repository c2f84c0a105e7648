// Package schema validates catalog payloads received from the ordering API.
//
// Validation is all-or-nothing: a single malformed entry rejects the whole
// payload and no items are returned.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/idilsaglam/pizza/internal/model"
)

// ErrInvalidCatalog is wrapped by every error returned from ParseCatalog.
var ErrInvalidCatalog = errors.New("schema: invalid catalog")

// ParseCatalog checks that raw is a JSON array of objects with an integer
// "id", a string "name", an array of strings "toppings" and a string "url".
// Unknown keys are ignored.
func ParseCatalog(raw []byte) ([]model.Item, error) {
	if isNull(raw) {
		return nil, fmt.Errorf("%w: payload is null", ErrInvalidCatalog)
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: not an array: %v", ErrInvalidCatalog, err)
	}
	items := make([]model.Item, 0, len(rows))
	for i, row := range rows {
		it, err := parseItem(row)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrInvalidCatalog, i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func parseItem(row json.RawMessage) (model.Item, error) {
	if isNull(row) {
		return model.Item{}, errors.New("not an object")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(row, &fields); err != nil {
		return model.Item{}, errors.New("not an object")
	}

	id, err := intField(fields, "id")
	if err != nil {
		return model.Item{}, err
	}
	name, err := stringField(fields, "name")
	if err != nil {
		return model.Item{}, err
	}
	toppings, err := stringsField(fields, "toppings")
	if err != nil {
		return model.Item{}, err
	}
	url, err := stringField(fields, "url")
	if err != nil {
		return model.Item{}, err
	}
	return model.Item{ID: id, Name: name, Toppings: toppings, URL: url}, nil
}

func field(fields map[string]json.RawMessage, key string) (json.RawMessage, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil, fmt.Errorf("%s: missing", key)
	}
	return raw, nil
}

func intField(fields map[string]json.RawMessage, key string) (int, error) {
	raw, err := field(fields, key)
	if err != nil {
		return 0, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("%s: want integer: %v", key, err)
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%s: want integer, got %s", key, raw)
	}
	if n, err := num.Int64(); err == nil {
		if n > math.MaxInt || n < math.MinInt {
			return 0, fmt.Errorf("%s: %d out of range", key, n)
		}
		return int(n), nil
	}
	// Exponent or trailing-zero forms such as 2.0 or 1e3.
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%s: want integer, got %s", key, num)
	}
	return int(f), nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, err := field(fields, key)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%s: want string: %v", key, err)
	}
	return s, nil
}

func stringsField(fields map[string]json.RawMessage, key string) ([]string, error) {
	raw, err := field(fields, key)
	if err != nil {
		return nil, err
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%s: want array: %v", key, err)
	}
	out := make([]string, 0, len(elems))
	for i, e := range elems {
		var s string
		if isNull(e) {
			return nil, fmt.Errorf("%s[%d]: want string, got null", key, i)
		}
		if err := json.Unmarshal(e, &s); err != nil {
			return nil, fmt.Errorf("%s[%d]: want string: %v", key, i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
