// Package event defines the stack-trace record written by the BPF sampler into
// the events ring buffer and read back by user space.
//
// The record crosses the kernel/user boundary as raw memory. StacktraceEvent
// must stay byte-for-byte identical to struct stacktrace_event in
// bpf/profile.h; assert.go fails the build if its Go layout drifts.
package event

import (
	"structs"

	"github.com/coral-mesh/stacklayout/internal/layout"
)

const (
	// MaxStackDepth is the number of frames captured per stack.
	MaxStackDepth = 128

	// TaskCommLen is the kernel's TASK_COMM_LEN.
	TaskCommLen = 16

	// RecordName is the C struct name of the record.
	RecordName = "stacktrace_event"
)

// StacktraceEvent mirrors struct stacktrace_event.
type StacktraceEvent struct {
	_         structs.HostLayout
	Pid       uint32                `layout:"pid"`
	CPUID     uint32                `layout:"cpu_id"`
	Timestamp uint64                `layout:"timestamp"`
	Comm      [TaskCommLen]byte     `layout:"comm,char"`
	KStackSz  int32                 `layout:"kstack_sz"`
	UStackSz  int32                 `layout:"ustack_sz"`
	KStack    [MaxStackDepth]uint64 `layout:"kstack"`
	UStack    [MaxStackDepth]uint64 `layout:"ustack"`
}

// Descriptor is the field list of struct stacktrace_event in declaration order.
var Descriptor = layout.MustDescriptor(RecordName,
	layout.Integer("pid", layout.Uint32),
	layout.Integer("cpu_id", layout.Uint32),
	layout.Integer("timestamp", layout.Uint64),
	layout.CharArray("comm", TaskCommLen),
	layout.Integer("kstack_sz", layout.Int32),
	layout.Integer("ustack_sz", layout.Int32),
	layout.Array("kstack", layout.Uint64, MaxStackDepth),
	layout.Array("ustack", layout.Uint64, MaxStackDepth),
)
