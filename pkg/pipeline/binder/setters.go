package binder

import (
	"bytes"
	"encoding/json"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/pkg/errors"

	"github.com/askiada/go-transform-pipeline/pkg/pipeline/model"
)

// Scalar lists the field types RegisterBasic can bind.
type Scalar interface {
	~bool | ~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// RegisterBasic binds a numeric, boolean or string field.
// Integer fields accept any JSON number and truncate it toward zero.
func RegisterBasic[P any, F Scalar](b *Binder, transform, param string, field func(*P) *F) {
	b.Register(transform, param, func(params model.Parameters, raw json.RawMessage, _ Store) error {
		target, err := fieldOf(params, field)
		if err != nil {
			return err
		}

		return decodeScalar(raw, reflect.ValueOf(target).Elem())
	})
}

// RegisterEnum binds a field through a name to value table.
func RegisterEnum[P any, E any](b *Binder, transform, param string, field func(*P) *E, names map[string]E) {
	table := maps.Clone(names)
	b.Register(transform, param, func(params model.Parameters, raw json.RawMessage, _ Store) error {
		target, err := fieldOf(params, field)
		if err != nil {
			return err
		}
		name, err := decodeString(raw)
		if err != nil {
			return err
		}
		value, ok := table[name]
		if !ok {
			return errors.Wrapf(ErrUnknownEnumValue, "%q", name)
		}
		*target = value

		return nil
	})
}

// RegisterDataRef binds a field referencing another dataset of the store.
// The JSON value is the store key. When kinds are given, the referenced
// value must hold one of them.
func RegisterDataRef[P any](b *Binder, transform, param string, field func(*P) *model.DataValue, kinds ...model.Kind) {
	b.Register(transform, param, func(params model.Parameters, raw json.RawMessage, store Store) error {
		target, err := fieldOf(params, field)
		if err != nil {
			return err
		}
		key, err := decodeString(raw)
		if err != nil {
			return err
		}
		if store == nil {
			return ErrStoreMustBeSet
		}
		value, ok := store.Get(key)
		if !ok || value.IsNone() {
			return errors.Wrapf(ErrDataNotFound, "key '%s'", key)
		}
		if len(kinds) > 0 && !slices.Contains(kinds, value.Kind()) {
			return errors.Wrapf(ErrDataKind, "key '%s' holds %s", key, value.Kind())
		}
		*target = value

		return nil
	})
}

type jsonKind int

const (
	jsonInvalid jsonKind = iota
	jsonNull
	jsonBool
	jsonNumber
	jsonString
	jsonArray
	jsonObject
)

func (k jsonKind) String() string {
	switch k {
	case jsonNull:
		return "null"
	case jsonBool:
		return "boolean"
	case jsonNumber:
		return "number"
	case jsonString:
		return "string"
	case jsonArray:
		return "array"
	case jsonObject:
		return "object"
	default:
		return "invalid"
	}
}

func kindOf(raw json.RawMessage) jsonKind {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return jsonInvalid
	}
	switch c := trimmed[0]; {
	case c == 'n':
		return jsonNull
	case c == 't' || c == 'f':
		return jsonBool
	case c == '"':
		return jsonString
	case c == '[':
		return jsonArray
	case c == '{':
		return jsonObject
	case c == '-' || (c >= '0' && c <= '9'):
		return jsonNumber
	default:
		return jsonInvalid
	}
}

func mismatch(expected string, got jsonKind) error {
	return errors.Wrapf(ErrTypeMismatch, "expected %s, got %s", expected, got)
}

func decodeString(raw json.RawMessage) (string, error) {
	if k := kindOf(raw); k != jsonString {
		return "", mismatch("string", k)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errors.Wrap(err, "unable to decode string")
	}

	return s, nil
}

func decodeNumber(raw json.RawMessage) (json.Number, error) {
	if k := kindOf(raw); k != jsonNumber {
		return "", mismatch("number", k)
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", errors.Wrap(err, "unable to decode number")
	}

	return num, nil
}

func decodeScalar(raw json.RawMessage, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Bool:
		if k := kindOf(raw); k != jsonBool {
			return mismatch("boolean", k)
		}
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return errors.Wrap(err, "unable to decode boolean")
		}
		dst.SetBool(v)
	case reflect.String:
		s, err := decodeString(raw)
		if err != nil {
			return err
		}
		dst.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		num, err := decodeNumber(raw)
		if err != nil {
			return err
		}
		n, err := truncateInt(num)
		if err != nil {
			return err
		}
		if dst.OverflowInt(n) {
			return errors.Wrapf(ErrOutOfRange, "%d overflows %s", n, dst.Type())
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		num, err := decodeNumber(raw)
		if err != nil {
			return err
		}
		n, err := truncateUint(num)
		if err != nil {
			return err
		}
		if dst.OverflowUint(n) {
			return errors.Wrapf(ErrOutOfRange, "%d overflows %s", n, dst.Type())
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		num, err := decodeNumber(raw)
		if err != nil {
			return err
		}
		f, err := num.Float64()
		if err != nil {
			return errors.Wrap(err, "unable to parse float")
		}
		if dst.OverflowFloat(f) {
			return errors.Wrapf(ErrOutOfRange, "%g overflows %s", f, dst.Type())
		}
		dst.SetFloat(f)
	default:
		return errors.Errorf("unsupported field type %s", dst.Type())
	}

	return nil
}

func truncateInt(num json.Number) (int64, error) {
	if n, err := num.Int64(); err == nil {
		return n, nil
	}
	f, err := num.Float64()
	if err != nil {
		return 0, errors.Wrap(err, "unable to parse number")
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return 0, errors.Wrapf(ErrOutOfRange, "%s", num)
	}

	return int64(t), nil
}

func truncateUint(num json.Number) (uint64, error) {
	if n, err := strconv.ParseUint(num.String(), 10, 64); err == nil {
		return n, nil
	}
	f, err := num.Float64()
	if err != nil {
		return 0, errors.Wrap(err, "unable to parse number")
	}
	t := math.Trunc(f)
	if t < 0 || t >= math.MaxUint64 {
		return 0, errors.Wrapf(ErrOutOfRange, "%s", num)
	}

	return uint64(t), nil
}
