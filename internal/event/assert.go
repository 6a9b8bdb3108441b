package event

import "unsafe"

// Compile-time layout assertions. Each pair subtracts two uintptr constants in
// both directions; if they differ, one result is negative and overflows, which
// is a compile error. Together they pin every field of StacktraceEvent directly
// after the previous one with no padding, and the record size to the end of
// the last field, on every GOARCH.

var ev StacktraceEvent

const (
	endPid      = unsafe.Offsetof(ev.Pid) + unsafe.Sizeof(ev.Pid)
	endCPUID    = unsafe.Offsetof(ev.CPUID) + unsafe.Sizeof(ev.CPUID)
	endTime     = unsafe.Offsetof(ev.Timestamp) + unsafe.Sizeof(ev.Timestamp)
	endComm     = unsafe.Offsetof(ev.Comm) + unsafe.Sizeof(ev.Comm)
	endKStackSz = unsafe.Offsetof(ev.KStackSz) + unsafe.Sizeof(ev.KStackSz)
	endUStackSz = unsafe.Offsetof(ev.UStackSz) + unsafe.Sizeof(ev.UStackSz)
	endKStack   = unsafe.Offsetof(ev.KStack) + unsafe.Sizeof(ev.KStack)
	endUStack   = unsafe.Offsetof(ev.UStack) + unsafe.Sizeof(ev.UStack)
)

const (
	_ = unsafe.Offsetof(ev.Pid) - 0
	_ = 0 - unsafe.Offsetof(ev.Pid)
)

const (
	_ = unsafe.Offsetof(ev.CPUID) - endPid
	_ = endPid - unsafe.Offsetof(ev.CPUID)
)

const (
	_ = unsafe.Offsetof(ev.Timestamp) - endCPUID
	_ = endCPUID - unsafe.Offsetof(ev.Timestamp)
)

const (
	_ = unsafe.Offsetof(ev.Comm) - endTime
	_ = endTime - unsafe.Offsetof(ev.Comm)
)

const (
	_ = unsafe.Offsetof(ev.KStackSz) - endComm
	_ = endComm - unsafe.Offsetof(ev.KStackSz)
)

const (
	_ = unsafe.Offsetof(ev.UStackSz) - endKStackSz
	_ = endKStackSz - unsafe.Offsetof(ev.UStackSz)
)

const (
	_ = unsafe.Offsetof(ev.KStack) - endUStackSz
	_ = endUStackSz - unsafe.Offsetof(ev.KStack)
)

const (
	_ = unsafe.Offsetof(ev.UStack) - endKStack
	_ = endKStack - unsafe.Offsetof(ev.UStack)
)

const (
	_ = unsafe.Sizeof(ev) - endUStack
	_ = endUStack - unsafe.Sizeof(ev)
)

// Size is the size of StacktraceEvent in bytes.
const Size = int(unsafe.Sizeof(ev))
