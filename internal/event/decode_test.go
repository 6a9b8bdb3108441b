package event

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, e *StacktraceEvent, order binary.ByteOrder) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, order, e))
	return buf.Bytes()
}

func sampleEvent() *StacktraceEvent {
	e := &StacktraceEvent{
		Pid:       4242,
		CPUID:     3,
		Timestamp: 123456789,
		KStackSz:  2,
		UStackSz:  3,
	}
	copy(e.Comm[:], "nginx")
	e.KStack[0], e.KStack[1] = 0xffffffff81000010, 0xffffffff81000020
	e.UStack[0], e.UStack[1], e.UStack[2] = 0x401000, 0x401100, 0x401200
	return e
}

func TestDecode(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			want := sampleEvent()
			data := encode(t, want, order)
			require.Len(t, data, Size)

			got, err := Decode(data, order)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecode_FieldPlacement(t *testing.T) {
	data := encode(t, sampleEvent(), binary.LittleEndian)

	assert.Equal(t, uint32(4242), binary.LittleEndian.Uint32(data[0:4]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, uint64(123456789), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, []byte("nginx"), data[16:21])
	assert.Equal(t, uint64(0x401000), binary.LittleEndian.Uint64(data[40+MaxStackDepth*8:]))
}

func TestDecode_TrailingPadding(t *testing.T) {
	data := append(encode(t, sampleEvent(), binary.LittleEndian), 0, 0, 0, 0)

	got, err := Decode(data, binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, sampleEvent(), got)
}

func TestDecode_Short(t *testing.T) {
	data := encode(t, sampleEvent(), binary.LittleEndian)

	_, err := Decode(data[:Size-1], binary.LittleEndian)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need 2088")
}

func TestStacktraceEvent_Accessors(t *testing.T) {
	e := sampleEvent()

	assert.Equal(t, "nginx", e.Command())
	assert.Equal(t, []uint64{0xffffffff81000010, 0xffffffff81000020}, e.KernelStack())
	assert.Len(t, e.UserStack(), 3)

	e.KStackSz = -14
	assert.Empty(t, e.KernelStack())

	e.UStackSz = MaxStackDepth + 10
	assert.Len(t, e.UserStack(), MaxStackDepth)

	copy(e.Comm[:], "0123456789abcdef")
	assert.Equal(t, "0123456789abcdef", e.Command())
}
