package synthtest

import (
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ConfigElement is implemented by every object that participates in the wire
// format. Fields returns the element's field manifest: the declared wire key
// and value binding for each field. One generic Serialize/Deserialize pair
// consumes the manifest, so elements never contain per-field conversion code.
type ConfigElement interface {
	Fields() []Field
}

// Field declares how a single field of a ConfigElement maps to the wire form.
type Field struct {
	// Key is the field's name in the wire object.
	Key string

	// Value reads and writes the field's in-memory representation.
	Value Binding

	// Required makes Deserialize fail if the key is absent from the input.
	Required bool

	// ServerSet marks a field that only the server populates (identity,
	// timestamps). Serialize skips it; Deserialize still applies it.
	ServerSet bool
}

// Binding is a typed accessor pair over one field.
type Binding interface {
	get() ldvalue.Value
	set(v ldvalue.Value) error
}

// DeserializationError reports a wire object that cannot be decoded into the
// declared field types.
type DeserializationError struct {
	Key      string
	Expected string
	Value    ldvalue.Value
	Missing  bool
}

func (e *DeserializationError) Error() string {
	if e.Missing {
		return fmt.Sprintf("required field %q missing from input", e.Key)
	}
	return fmt.Sprintf("cannot decode field %q: expected %s, got %s", e.Key, e.Expected, e.Value.JSONString())
}

// Serialize converts an element to its wire object. Server-assigned fields
// are never sent.
func Serialize(e ConfigElement) ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for _, f := range e.Fields() {
		if f.ServerSet {
			continue
		}
		b.Set(f.Key, f.Value.get())
	}
	return b.Build()
}

// Deserialize populates an element from a wire object. Keys absent from the
// input leave the element's current (default) values in place, except for
// Required fields, whose absence is an error.
func Deserialize(e ConfigElement, data ldvalue.Value) error {
	if data.Type() != ldvalue.ObjectType {
		return &DeserializationError{Key: "", Expected: "object", Value: data}
	}
	for _, f := range e.Fields() {
		v, ok := data.TryGetByKey(f.Key)
		if !ok {
			if f.Required {
				return &DeserializationError{Key: f.Key, Missing: true}
			}
			continue
		}
		if err := f.Value.set(v); err != nil {
			if ce, ok := err.(*coercionError); ok {
				return &DeserializationError{Key: f.Key, Expected: ce.expected, Value: v}
			}
			return fmt.Errorf("field %q: %w", f.Key, err)
		}
	}
	return nil
}

type coercionError struct {
	expected string
}

func (e *coercionError) Error() string { return "expected " + e.expected }

// Int binds an integer field.
func Int(p *int) Binding { return intBinding{p} }

type intBinding struct{ p *int }

func (b intBinding) get() ldvalue.Value { return ldvalue.Int(*b.p) }

func (b intBinding) set(v ldvalue.Value) error {
	if !v.IsNumber() {
		return &coercionError{expected: "number"}
	}
	*b.p = v.IntValue()
	return nil
}

// Float binds a floating-point field.
func Float(p *float64) Binding { return floatBinding{p} }

type floatBinding struct{ p *float64 }

func (b floatBinding) get() ldvalue.Value { return ldvalue.Float64(*b.p) }

func (b floatBinding) set(v ldvalue.Value) error {
	if !v.IsNumber() {
		return &coercionError{expected: "number"}
	}
	*b.p = v.Float64Value()
	return nil
}

// String binds a string field.
func String(p *string) Binding { return stringBinding{p} }

type stringBinding struct{ p *string }

func (b stringBinding) get() ldvalue.Value { return ldvalue.String(*b.p) }

func (b stringBinding) set(v ldvalue.Value) error {
	if !v.IsString() {
		return &coercionError{expected: "string"}
	}
	*b.p = v.StringValue()
	return nil
}

// Bool binds a boolean field.
func Bool(p *bool) Binding { return boolBinding{p} }

type boolBinding struct{ p *bool }

func (b boolBinding) get() ldvalue.Value { return ldvalue.Bool(*b.p) }

func (b boolBinding) set(v ldvalue.Value) error {
	if !v.IsBool() {
		return &coercionError{expected: "boolean"}
	}
	*b.p = v.BoolValue()
	return nil
}

// Enum binds a string field restricted to a fixed set of wire values.
func Enum(p *string, allowed ...string) Binding { return enumBinding{p, allowed} }

type enumBinding struct {
	p       *string
	allowed []string
}

func (b enumBinding) get() ldvalue.Value { return ldvalue.String(*b.p) }

func (b enumBinding) set(v ldvalue.Value) error {
	if !v.IsString() {
		return &coercionError{expected: "string"}
	}
	s := v.StringValue()
	for _, a := range b.allowed {
		if s == a {
			*b.p = s
			return nil
		}
	}
	return &coercionError{expected: fmt.Sprintf("one of %v", b.allowed)}
}

// StringList binds an ordered list of strings.
func StringList(p *[]string) Binding { return stringListBinding{p} }

type stringListBinding struct{ p *[]string }

func (b stringListBinding) get() ldvalue.Value {
	a := ldvalue.ArrayBuild()
	for _, s := range *b.p {
		a.Add(ldvalue.String(s))
	}
	return a.Build()
}

func (b stringListBinding) set(v ldvalue.Value) error {
	if v.Type() != ldvalue.ArrayType {
		return &coercionError{expected: "array of strings"}
	}
	out := make([]string, 0, v.Count())
	for i := 0; i < v.Count(); i++ {
		item := v.GetByIndex(i)
		if !item.IsString() {
			return &coercionError{expected: "array of strings"}
		}
		out = append(out, item.StringValue())
	}
	*b.p = out
	return nil
}

// IntList binds an ordered list of integers.
func IntList(p *[]int) Binding { return intListBinding{p} }

type intListBinding struct{ p *[]int }

func (b intListBinding) get() ldvalue.Value {
	a := ldvalue.ArrayBuild()
	for _, n := range *b.p {
		a.Add(ldvalue.Int(n))
	}
	return a.Build()
}

func (b intListBinding) set(v ldvalue.Value) error {
	if v.Type() != ldvalue.ArrayType {
		return &coercionError{expected: "array of numbers"}
	}
	out := make([]int, 0, v.Count())
	for i := 0; i < v.Count(); i++ {
		item := v.GetByIndex(i)
		if !item.IsNumber() {
			return &coercionError{expected: "array of numbers"}
		}
		out = append(out, item.IntValue())
	}
	*b.p = out
	return nil
}

// StringMap binds a mapping of string keys to string values.
func StringMap(p *map[string]string) Binding { return stringMapBinding{p} }

type stringMapBinding struct{ p *map[string]string }

func (b stringMapBinding) get() ldvalue.Value {
	o := ldvalue.ObjectBuild()
	for k, v := range *b.p {
		o.Set(k, ldvalue.String(v))
	}
	return o.Build()
}

func (b stringMapBinding) set(v ldvalue.Value) error {
	if v.Type() != ldvalue.ObjectType {
		return &coercionError{expected: "object of strings"}
	}
	out := make(map[string]string, v.Count())
	for _, k := range v.Keys() {
		item := v.GetByKey(k)
		if !item.IsString() {
			return &coercionError{expected: "object of strings"}
		}
		out[k] = item.StringValue()
	}
	*b.p = out
	return nil
}

// Element binds a nested ConfigElement, reconstructed recursively.
func Element(e ConfigElement) Binding { return elementBinding{e} }

type elementBinding struct{ e ConfigElement }

func (b elementBinding) get() ldvalue.Value { return Serialize(b.e) }

func (b elementBinding) set(v ldvalue.Value) error { return Deserialize(b.e, v) }
