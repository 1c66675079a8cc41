// Command scanio reads files the way the scanio library does and reports how
// they were read.
//
// Usage:
//
//	scanio [--log-level LEVEL] [--log-format text|json] <command> [flags] [args]
//
// Commands:
//
//	sanitize NAME...          print the sanitized form of each archive entry name
//	cat [--threshold N] FILE  write FILE to stdout
//	probe [--json]            report the early-release capability of this platform
//	stat [--json] FILE...     report size, read strategy and buffer growth per file
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
