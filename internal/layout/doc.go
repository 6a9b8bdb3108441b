// Package layout computes and compares the memory layout of fixed-size records
// that cross a compilation boundary without a serialization format.
//
// A Descriptor lists the fields of a record in declaration order. Compute places
// every field under the alignment rules of a target ABI and returns a Report of
// per-field sizes and offsets. Reports can be emitted as text, parsed back from
// text produced by another toolchain, fingerprinted, and compared field by field.
//
// The Go compiler's own choice for a struct is available through ReportOf, so the
// consumer side can be checked against the descriptor and against the producer's
// reference in one pass.
package layout
