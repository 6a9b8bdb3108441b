// Package btflayout reads record layouts from BTF, the type information clang
// emits into a compiled BPF object. It gives the producer side's own view of a
// record, without a C reporter binary.
package btflayout

import (
	"errors"
	"fmt"

	"github.com/cilium/ebpf/btf"

	"github.com/coral-mesh/stacklayout/internal/layout"
)

// ErrNotFound is returned when the object carries no struct of the given name.
var ErrNotFound = errors.New("struct not found in BTF")

// Load reads the BTF section of an ELF object file.
func Load(path string) (*btf.Spec, error) {
	spec, err := btf.LoadSpec(path)
	if err != nil {
		return nil, fmt.Errorf("load BTF from %s: %w", path, err)
	}
	return spec, nil
}

// StructReport looks up the struct called name in spec and returns its layout.
func StructReport(spec *btf.Spec, name string, abi string) (layout.Report, error) {
	var s *btf.Struct
	if err := spec.TypeByName(name, &s); err != nil {
		if errors.Is(err, btf.ErrNotFound) {
			return layout.Report{}, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return layout.Report{}, fmt.Errorf("lookup struct %s: %w", name, err)
	}
	return FromStruct(s, abi)
}

// FromStruct converts a BTF struct into a report. Bitfields and members that do
// not start on a byte boundary have no byte offset and are rejected.
func FromStruct(s *btf.Struct, abi string) (layout.Report, error) {
	report := layout.Report{
		Record: s.Name,
		ABI:    abi,
		Size:   int(s.Size),
		Align:  1,
	}

	for _, m := range s.Members {
		if m.BitfieldSize != 0 {
			return layout.Report{}, fmt.Errorf("%s.%s: bitfield members are not supported", s.Name, m.Name)
		}
		if m.Offset%8 != 0 {
			return layout.Report{}, fmt.Errorf("%s.%s: member offset %d bits is not byte aligned", s.Name, m.Name, m.Offset)
		}

		size, err := btf.Sizeof(m.Type)
		if err != nil {
			return layout.Report{}, fmt.Errorf("%s.%s: %w", s.Name, m.Name, err)
		}
		align, err := alignOf(m.Type)
		if err != nil {
			return layout.Report{}, fmt.Errorf("%s.%s: %w", s.Name, m.Name, err)
		}
		if align > report.Align {
			report.Align = align
		}

		report.Fields = append(report.Fields, layout.FieldLayout{
			Name:   m.Name,
			Size:   size,
			Offset: int(m.Offset.Bytes()),
		})
	}

	return report, nil
}

// alignOf returns the natural alignment of a scalar or array of scalars.
// Alignment is not recorded in BTF, so it is the element width.
func alignOf(typ btf.Type) (int, error) {
	typ = btf.UnderlyingType(typ)
	if arr, ok := typ.(*btf.Array); ok {
		return alignOf(arr.Type)
	}

	switch t := typ.(type) {
	case *btf.Int, *btf.Enum:
		size, err := btf.Sizeof(t)
		if err != nil {
			return 0, err
		}
		return size, nil
	default:
		return 0, fmt.Errorf("unsupported member type %s", typ)
	}
}
