// Package testutil provides testing utilities for scanio.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and readers that misbehave in the
// ways real streams do: short reads, empty reads, and late failures.
//
// # Random Payloads
//
//	rng := testutil.NewRNG(seed)
//	data := rng.Bytes(1 << 20)
//
// # Misbehaving Readers
//
//	r := testutil.ChunkedReader(bytes.NewReader(data), 7)   // at most 7 bytes per Read
//	r = testutil.StutterReader(r, 3)                        // 3 empty reads before each delivery
//	r = testutil.FailAfter(r, 4096, io.ErrUnexpectedEOF)    // error after 4 KiB
package testutil
