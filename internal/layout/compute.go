package layout

// Compute lays out d under abi.
//
// Each field starts at the smallest offset at or after the end of the previous
// field that is a multiple of its alignment. The record is padded at the end to
// a multiple of its own alignment, the largest of its fields.
func Compute(d Descriptor, abi ABI) Report {
	report := Report{
		Record: d.name,
		ABI:    abi.Name,
		Fields: make([]FieldLayout, 0, len(d.fields)),
		Align:  1,
	}

	offset := 0
	for _, f := range d.fields {
		align := abi.alignOf(f.Elem.Size)
		offset = alignUp(offset, align)
		size := f.Size()

		report.Fields = append(report.Fields, FieldLayout{
			Name:   f.Name,
			Size:   size,
			Offset: offset,
		})

		offset += size
		if align > report.Align {
			report.Align = align
		}
	}
	report.Size = alignUp(offset, report.Align)

	return report
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}
