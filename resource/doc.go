// Package resource bounds the memory, concurrency and throughput used by reads.
//
// A [Controller] is shared by all drains of a process (or of a scan). Drains
// charge every buffer allocation against its memory budget and give the
// charge back when they finish, so a burst of large entries fails fast with
// [ErrMemoryLimitExceeded] instead of exhausting the heap.
package resource
