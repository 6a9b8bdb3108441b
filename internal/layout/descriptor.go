package layout

import (
	"fmt"
)

// Scalar is a fixed-width integer element type.
type Scalar struct {
	// Name is the C spelling of the type.
	Name string
	// Size is the width in bytes.
	Size int
	// Signed reports whether the type is signed.
	Signed bool
}

// Element types accepted in a Descriptor.
var (
	Int8   = Scalar{Name: "__s8", Size: 1, Signed: true}
	Uint8  = Scalar{Name: "__u8", Size: 1}
	Int16  = Scalar{Name: "__s16", Size: 2, Signed: true}
	Uint16 = Scalar{Name: "__u16", Size: 2}
	Int32  = Scalar{Name: "__s32", Size: 4, Signed: true}
	Uint32 = Scalar{Name: "__u32", Size: 4}
	Int64  = Scalar{Name: "__s64", Size: 8, Signed: true}
	Uint64 = Scalar{Name: "__u64", Size: 8}
	Char   = Scalar{Name: "char", Size: 1, Signed: true}
)

// Kind is the semantic category of a field.
type Kind int

const (
	// KindInteger is a single fixed-width integer.
	KindInteger Kind = iota + 1
	// KindArray is a fixed-size array of fixed-width integers.
	KindArray
	// KindCharArray is a fixed-size character array.
	KindCharArray
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindArray:
		return "array"
	case KindCharArray:
		return "char array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field declares one member of a record.
type Field struct {
	Name string
	Elem Scalar
	// Count is the number of elements for arrays, zero for a plain integer.
	Count int

	array bool
}

// Kind returns the semantic category of the field.
func (f Field) Kind() Kind {
	switch {
	case f.Count == 0 && !f.array:
		return KindInteger
	case f.Elem == Char:
		return KindCharArray
	default:
		return KindArray
	}
}

// Size returns the footprint of the field in bytes.
func (f Field) Size() int {
	if f.Count == 0 && !f.array {
		return f.Elem.Size
	}
	return f.Elem.Size * f.Count
}

// Integer declares a plain integer field.
func Integer(name string, elem Scalar) Field {
	return Field{Name: name, Elem: elem}
}

// Array declares a fixed-size integer array field.
func Array(name string, elem Scalar, count int) Field {
	return Field{Name: name, Elem: elem, Count: count, array: true}
}

// CharArray declares a fixed-size character array field.
func CharArray(name string, count int) Field {
	return Field{Name: name, Elem: Char, Count: count, array: true}
}

// Descriptor is the ordered field list of a record. It is never mutated after
// construction.
type Descriptor struct {
	name   string
	fields []Field
}

// NewDescriptor builds and validates a descriptor.
func NewDescriptor(name string, fields ...Field) (Descriptor, error) {
	d := Descriptor{name: name, fields: append([]Field(nil), fields...)}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// MustDescriptor is like NewDescriptor but panics on an invalid descriptor.
// Use only for package-level record definitions.
func MustDescriptor(name string, fields ...Field) Descriptor {
	d, err := NewDescriptor(name, fields...)
	if err != nil {
		panic(fmt.Sprintf("layout: %v", err))
	}
	return d
}

// Name returns the record name.
func (d Descriptor) Name() string { return d.name }

// Fields returns a copy of the field list in declaration order.
func (d Descriptor) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Len returns the number of fields.
func (d Descriptor) Len() int { return len(d.fields) }

// Validate checks that every field has a unique name and a known element type,
// and that no array is empty.
func (d Descriptor) Validate() error {
	if d.name == "" {
		return fmt.Errorf("descriptor has no record name")
	}
	seen := make(map[string]struct{}, len(d.fields))
	for i, f := range d.fields {
		if f.Name == "" {
			return fmt.Errorf("record %s: field %d has no name", d.name, i)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("record %s: duplicate field %q", d.name, f.Name)
		}
		seen[f.Name] = struct{}{}

		switch f.Elem.Size {
		case 1, 2, 4, 8:
		default:
			return fmt.Errorf("record %s: field %q has unsupported element width %d", d.name, f.Name, f.Elem.Size)
		}
		if f.Count < 0 {
			return fmt.Errorf("record %s: field %q has negative element count %d", d.name, f.Name, f.Count)
		}
		if f.array && f.Count == 0 {
			return fmt.Errorf("record %s: field %q is a zero-length array", d.name, f.Name)
		}
	}
	return nil
}

// Reorder returns a descriptor with the same fields in the given order. Every
// field must be named exactly once.
func (d Descriptor) Reorder(names ...string) (Descriptor, error) {
	if len(names) != len(d.fields) {
		return Descriptor{}, fmt.Errorf("record %s: reorder needs %d names, got %d", d.name, len(d.fields), len(names))
	}
	byName := make(map[string]Field, len(d.fields))
	for _, f := range d.fields {
		byName[f.Name] = f
	}
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			return Descriptor{}, fmt.Errorf("record %s: unknown or repeated field %q", d.name, name)
		}
		delete(byName, name)
		fields = append(fields, f)
	}
	return NewDescriptor(d.name, fields...)
}
