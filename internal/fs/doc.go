// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: Represents an open file with read/stat capabilities
//   - [FileSystem]: Abstracts the filesystem operations reads need (open, stat)
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package; also a
//     [Mapper], so large files can be memory-mapped
//   - [FaultyFS]: Test utility for fault injection (read errors, short reads)
//
// # Usage
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.Open(path)
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("broken.jar", fs.Fault{FailAfterBytes: 1024})
//	// inject ffs into component under test
//
// # Design Notes
//
// This package intentionally does NOT include context.Context parameters.
// Filesystem operations are typically fast and non-interruptible at the
// syscall level. Callers that need bounded reads wrap the stream instead.
package fs
