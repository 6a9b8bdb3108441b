package layout

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"sort"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// ABI describes the alignment contract of a compilation target.
type ABI struct {
	// Name identifies the target (e.g. "amd64", "bpfel").
	Name string
	// MaxAlign caps the natural alignment of a scalar.
	MaxAlign int
	// ByteOrder is the byte order of multi-byte scalars.
	ByteOrder binary.ByteOrder
}

var (
	// AMD64 is the x86-64 System V ABI.
	AMD64 = ABI{Name: "amd64", MaxAlign: 8, ByteOrder: binary.LittleEndian}

	// ARM64 is the AAPCS64 ABI.
	ARM64 = ABI{Name: "arm64", MaxAlign: 8, ByteOrder: binary.LittleEndian}

	// I386 is the i386 System V ABI, where 8-byte scalars are 4-byte aligned.
	I386 = ABI{Name: "386", MaxAlign: 4, ByteOrder: binary.LittleEndian}

	// BPFEL is the little-endian eBPF target used by clang -target bpfel.
	BPFEL = ABI{Name: "bpfel", MaxAlign: 8, ByteOrder: binary.LittleEndian}

	// BPFEB is the big-endian eBPF target.
	BPFEB = ABI{Name: "bpfeb", MaxAlign: 8, ByteOrder: binary.BigEndian}
)

var knownABIs = map[string]ABI{
	AMD64.Name: AMD64,
	ARM64.Name: ARM64,
	I386.Name:  I386,
	BPFEL.Name: BPFEL,
	BPFEB.Name: BPFEB,
}

// Host returns the ABI the running binary was compiled for, as seen by the Go
// compiler.
func Host() ABI {
	var order binary.ByteOrder = binary.LittleEndian
	if cpu.IsBigEndian {
		order = binary.BigEndian
	}
	return ABI{
		Name:      runtime.GOARCH,
		MaxAlign:  int(unsafe.Alignof(uint64(0))),
		ByteOrder: order,
	}
}

// LookupABI resolves an ABI by name. "host" and the empty string resolve to Host.
func LookupABI(name string) (ABI, error) {
	if name == "" || name == "host" {
		return Host(), nil
	}
	abi, ok := knownABIs[name]
	if !ok {
		return ABI{}, fmt.Errorf("unknown ABI %q (known: host, %v)", name, ABINames())
	}
	return abi, nil
}

// ABINames returns the names of the named ABIs in sorted order.
func ABINames() []string {
	names := make([]string, 0, len(knownABIs))
	for name := range knownABIs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// alignOf returns the alignment of a scalar of the given size under abi.
func (a ABI) alignOf(size int) int {
	if a.MaxAlign > 0 && size > a.MaxAlign {
		return a.MaxAlign
	}
	if size <= 0 {
		return 1
	}
	return size
}
