package layout

import (
	"fmt"
	"reflect"
	"strings"
)

// TagName is the struct tag read by DescriptorOf and ReportOf.
//
//	Comm [16]byte `layout:"comm,char"`
const TagName = "layout"

var scalarKinds = map[reflect.Kind]Scalar{
	reflect.Int8:   Int8,
	reflect.Uint8:  Uint8,
	reflect.Int16:  Int16,
	reflect.Uint16: Uint16,
	reflect.Int32:  Int32,
	reflect.Uint32: Uint32,
	reflect.Int64:  Int64,
	reflect.Uint64: Uint64,
}

// DescriptorOf derives a descriptor from a Go struct type. Blank fields are
// skipped. Field types other than fixed-width integers and fixed-size arrays of
// them are rejected.
func DescriptorOf(t reflect.Type, record string) (Descriptor, error) {
	if t.Kind() != reflect.Struct {
		return Descriptor{}, fmt.Errorf("%s is not a struct", t)
	}

	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}
		f, err := fieldOf(sf)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%s.%s: %w", t.Name(), sf.Name, err)
		}
		fields = append(fields, f)
	}

	return NewDescriptor(record, fields...)
}

// ReportOf returns the layout the Go compiler chose for t on the running host.
func ReportOf(t reflect.Type, record string) (Report, error) {
	if _, err := DescriptorOf(t, record); err != nil {
		return Report{}, err
	}

	report := Report{
		Record: record,
		ABI:    Host().Name,
		Size:   int(t.Size()),
		Align:  t.Align(),
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}
		name, _ := parseTag(sf)
		report.Fields = append(report.Fields, FieldLayout{
			Name:   name,
			Size:   int(sf.Type.Size()),
			Offset: int(sf.Offset),
		})
	}
	return report, nil
}

func fieldOf(sf reflect.StructField) (Field, error) {
	name, char := parseTag(sf)

	switch sf.Type.Kind() {
	case reflect.Array:
		elem, ok := scalarKinds[sf.Type.Elem().Kind()]
		if !ok {
			return Field{}, fmt.Errorf("unsupported array element type %s", sf.Type.Elem())
		}
		if sf.Type.Len() == 0 {
			return Field{}, fmt.Errorf("zero-length array %s", sf.Type)
		}
		if char {
			if elem.Size != 1 {
				return Field{}, fmt.Errorf("char array needs a byte-sized element, got %s", sf.Type.Elem())
			}
			return CharArray(name, sf.Type.Len()), nil
		}
		return Array(name, elem, sf.Type.Len()), nil

	default:
		elem, ok := scalarKinds[sf.Type.Kind()]
		if !ok {
			return Field{}, fmt.Errorf("unsupported field type %s", sf.Type)
		}
		if char {
			return Field{}, fmt.Errorf("char option on non-array type %s", sf.Type)
		}
		return Integer(name, elem), nil
	}
}

func parseTag(sf reflect.StructField) (name string, char bool) {
	tag, ok := sf.Tag.Lookup(TagName)
	if !ok {
		return strings.ToLower(sf.Name), false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = strings.ToLower(sf.Name)
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "char" {
			char = true
		}
	}
	return name, char
}
