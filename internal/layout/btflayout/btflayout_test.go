package btflayout

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cilium/ebpf/btf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coral-mesh/stacklayout/internal/event"
	"github.com/coral-mesh/stacklayout/internal/layout"
)

// stacktraceEventBTF builds the type clang emits for struct stacktrace_event
// in bpf/profile.h.
func stacktraceEventBTF() *btf.Struct {
	u32 := &btf.Typedef{Name: "__u32", Type: &btf.Int{Name: "unsigned int", Size: 4}}
	s32 := &btf.Typedef{Name: "__s32", Type: &btf.Int{Name: "int", Size: 4, Encoding: btf.Signed}}
	u64 := &btf.Typedef{Name: "__u64", Type: &btf.Int{Name: "unsigned long long", Size: 8}}
	char := &btf.Int{Name: "char", Size: 1, Encoding: btf.Signed}
	index := &btf.Int{Name: "__ARRAY_SIZE_TYPE__", Size: 4}

	stack := &btf.Typedef{Name: "stack_trace_t", Type: &btf.Array{Index: index, Type: u64, Nelems: event.MaxStackDepth}}

	return &btf.Struct{
		Name: event.RecordName,
		Size: 2088,
		Members: []btf.Member{
			{Name: "pid", Type: u32, Offset: 0},
			{Name: "cpu_id", Type: u32, Offset: 32},
			{Name: "timestamp", Type: u64, Offset: 64},
			{Name: "comm", Type: &btf.Array{Index: index, Type: char, Nelems: event.TaskCommLen}, Offset: 128},
			{Name: "kstack_sz", Type: s32, Offset: 256},
			{Name: "ustack_sz", Type: s32, Offset: 288},
			{Name: "kstack", Type: stack, Offset: 320},
			{Name: "ustack", Type: stack, Offset: 320 + 8*8*event.MaxStackDepth},
		},
	}
}

func TestFromStruct_MatchesDescriptor(t *testing.T) {
	got, err := FromStruct(stacktraceEventBTF(), "bpfel")
	require.NoError(t, err)

	want := layout.Compute(event.Descriptor, layout.BPFEL)
	assert.Equal(t, want, got)
}

func TestFromStruct_DetectsDrift(t *testing.T) {
	s := stacktraceEventBTF()
	s.Members[6].Offset = 384 // kstack after 8 bytes of padding
	s.Members[7].Offset += 64
	s.Size += 8

	got, err := FromStruct(s, "bpfel")
	require.NoError(t, err)

	err = layout.Compare(got.Fields, layout.Compute(event.Descriptor, layout.BPFEL).Fields)
	var mismatch *layout.MismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Len(t, mismatch.Mismatches, 2)
	assert.Equal(t, "kstack", mismatch.Mismatches[0].Field)
	assert.Equal(t, layout.ReasonOffset, mismatch.Mismatches[0].Reason)
}

func TestFromStruct_Rejects(t *testing.T) {
	u8 := &btf.Int{Name: "unsigned char", Size: 1}

	bitfield := &btf.Struct{Name: "flags", Size: 1, Members: []btf.Member{
		{Name: "a", Type: u8, Offset: 0, BitfieldSize: 3},
	}}
	_, err := FromStruct(bitfield, "bpfel")
	assert.ErrorContains(t, err, "bitfield")

	unaligned := &btf.Struct{Name: "odd", Size: 2, Members: []btf.Member{
		{Name: "a", Type: u8, Offset: 4},
	}}
	_, err = FromStruct(unaligned, "bpfel")
	assert.ErrorContains(t, err, "not byte aligned")

	pointer := &btf.Struct{Name: "ptr", Size: 8, Members: []btf.Member{
		{Name: "p", Type: &btf.Pointer{Target: u8}, Offset: 0},
	}}
	_, err = FromStruct(pointer, "bpfel")
	assert.ErrorContains(t, err, "unsupported member type")
}

func TestStructReport(t *testing.T) {
	builder, err := btf.NewBuilder([]btf.Type{stacktraceEventBTF()})
	require.NoError(t, err)
	raw, err := builder.Marshal(nil, nil)
	require.NoError(t, err)

	spec, err := btf.LoadSpecFromReader(bytes.NewReader(raw))
	require.NoError(t, err)

	got, err := StructReport(spec, event.RecordName, "bpfel")
	require.NoError(t, err)
	assert.Equal(t, layout.Compute(event.Descriptor, layout.BPFEL), got)

	_, err = StructReport(spec, "no_such_struct", "bpfel")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.o")
	assert.Error(t, err)
}
