// Package jsonobj builds JSON documents from nested callbacks, in the same
// scoped style as package markup, and renders them compact or indented.
//
//	o := jsonobj.Obj(func(o *jsonobj.Object) {
//		o.Set("property", jsonobj.String("value"))
//		o.Arr("array", jsonobj.Int(1), jsonobj.Int(2))
//		o.Set("null", jsonobj.Null())
//		o.Obj("empty", nil)
//	})
//	fmt.Println(o.Pretty())
package jsonobj

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a JSON value: *Object, *Array or a scalar.
type Value interface {
	// String renders the value compactly.
	String() string
	// Pretty renders the value indented by two spaces per level.
	Pretty() string
	writeTo(b *strings.Builder, indent string, depth int)
}

// ErrCycle is the panic value (wrapped) raised when a value would end up
// containing itself.
var ErrCycle = errors.New("jsonobj: value would contain itself")

type entry struct {
	key   string
	value Value
}

// Object is a JSON object. Keys keep their insertion order.
type Object struct {
	entries []entry
}

// Obj creates an object and lets configure populate it.
func Obj(configure func(*Object)) *Object {
	o := &Object{}
	if configure != nil {
		configure(o)
	}
	return o
}

// Set stores v under key. An existing key keeps its position and gets the
// new value. A nil v is stored as null. Values form a tree: storing o, or a
// container holding o, inside o panics with ErrCycle.
func (o *Object) Set(key string, v Value) {
	if v == nil {
		v = Null()
	}
	if reaches(v, o) {
		panic(fmt.Errorf("%w: key %q", ErrCycle, key))
	}
	for i := range o.entries {
		if o.entries[i].key == key {
			o.entries[i].value = v
			return
		}
	}
	o.entries = append(o.entries, entry{key: key, value: v})
}

// Obj stores a nested object under key and returns it.
func (o *Object) Obj(key string, configure func(*Object)) *Object {
	child := Obj(configure)
	o.Set(key, child)
	return child
}

// Arr stores an array of values under key and returns it.
func (o *Object) Arr(key string, values ...Value) *Array {
	child := Arr(values...)
	o.Set(key, child)
	return child
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	for _, e := range o.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.entries))
	for _, e := range o.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.entries)
}

func (o *Object) String() string { return render(o, "") }
func (o *Object) Pretty() string { return render(o, "  ") }

func (o *Object) writeTo(b *strings.Builder, indent string, depth int) {
	if len(o.entries) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteByte('{')
	for i, e := range o.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		newline(b, indent, depth+1)
		b.WriteString(quote(e.key))
		b.WriteByte(':')
		if indent != "" {
			b.WriteByte(' ')
		}
		e.value.writeTo(b, indent, depth+1)
	}
	newline(b, indent, depth)
	b.WriteByte('}')
}

// Array is a JSON array.
type Array struct {
	values []Value
}

// Arr creates an array holding values. Nil values become null.
func Arr(values ...Value) *Array {
	a := &Array{}
	a.Append(values...)
	return a
}

// Append adds values to the end of the array. Like Object.Set it panics
// with ErrCycle if a value holds a.
func (a *Array) Append(values ...Value) {
	for _, v := range values {
		if v == nil {
			v = Null()
		}
		if reaches(v, a) {
			panic(fmt.Errorf("%w: array element %d", ErrCycle, len(a.values)))
		}
		a.values = append(a.values, v)
	}
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.values)
}

func (a *Array) String() string { return render(a, "") }
func (a *Array) Pretty() string { return render(a, "  ") }

func (a *Array) writeTo(b *strings.Builder, indent string, depth int) {
	if len(a.values) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteByte('[')
	for i, v := range a.values {
		if i > 0 {
			b.WriteByte(',')
		}
		newline(b, indent, depth+1)
		v.writeTo(b, indent, depth+1)
	}
	newline(b, indent, depth)
	b.WriteByte(']')
}

// scalar holds the already encoded JSON text of a string, number, bool or null.
type scalar string

func (s scalar) String() string { return string(s) }
func (s scalar) Pretty() string { return string(s) }

func (s scalar) writeTo(b *strings.Builder, _ string, _ int) {
	b.WriteString(string(s))
}

// String returns a JSON string.
func String(s string) Value {
	return scalar(quote(s))
}

// Int returns a JSON integer.
func Int(n int64) Value {
	return scalar(strconv.FormatInt(n, 10))
}

// Float returns a JSON number. NaN and infinities have no JSON form and
// become null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return scalar(strconv.FormatFloat(f, 'g', -1, 64))
}

// Bool returns true or false.
func Bool(v bool) Value {
	return scalar(strconv.FormatBool(v))
}

// Null returns null.
func Null() Value {
	return scalar("null")
}

// reaches reports whether target is v or nested somewhere inside v.
func reaches(v, target Value) bool {
	if v == target {
		return true
	}
	switch t := v.(type) {
	case *Object:
		for _, e := range t.entries {
			if reaches(e.value, target) {
				return true
			}
		}
	case *Array:
		for _, c := range t.values {
			if reaches(c, target) {
				return true
			}
		}
	}
	return false
}

func render(v Value, indent string) string {
	var b strings.Builder
	v.writeTo(&b, indent, 0)
	return b.String()
}

func newline(b *strings.Builder, indent string, depth int) {
	if indent == "" {
		return
	}
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString(indent)
	}
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// encoding a string cannot fail
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
