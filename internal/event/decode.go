package event

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Decode reads one ring-buffer sample. The sample may be longer than the
// record (the ring buffer rounds samples up to 8 bytes); trailing bytes are
// ignored.
func Decode(data []byte, order binary.ByteOrder) (*StacktraceEvent, error) {
	if len(data) < Size {
		return nil, fmt.Errorf("stacktrace event sample is %d bytes, need %d", len(data), Size)
	}

	var e StacktraceEvent
	if err := binary.Read(bytes.NewReader(data[:Size]), order, &e); err != nil {
		return nil, fmt.Errorf("decode stacktrace event: %w", err)
	}
	return &e, nil
}

// Command returns the task name with its NUL padding removed.
func (e *StacktraceEvent) Command() string {
	if i := bytes.IndexByte(e.Comm[:], 0); i >= 0 {
		return string(e.Comm[:i])
	}
	return string(e.Comm[:])
}

// KernelStack returns the captured kernel frames.
func (e *StacktraceEvent) KernelStack() []uint64 {
	return e.KStack[:frames(e.KStackSz)]
}

// UserStack returns the captured user frames.
func (e *StacktraceEvent) UserStack() []uint64 {
	return e.UStack[:frames(e.UStackSz)]
}

// frames clamps a frame count reported by the sampler. Negative counts are
// errors returned by the stack helper.
func frames(n int32) int {
	switch {
	case n < 0:
		return 0
	case n > MaxStackDepth:
		return MaxStackDepth
	default:
		return int(n)
	}
}
