package drain

import "math"

// DefaultMapThreshold is the file size from which ReadFile maps instead of
// streaming on most platforms.
const DefaultMapThreshold = 16384

// Threshold returns the file size at or above which ReadFile memory-maps a
// file on the given GOOS. A negative value maps every file, math.MaxInt64
// never maps.
//
// The values are policy: benchmark the target hardware and supply a custom
// lookup via WithThreshold.
type Threshold func(goos string) int64

// DefaultThreshold maps files of DefaultMapThreshold bytes and more. On
// windows, where reads through a mapping were measured to beat buffered reads
// at any size, every file is mapped.
func DefaultThreshold(goos string) int64 {
	switch goos {
	case "windows":
		return -1
	default:
		return DefaultMapThreshold
	}
}

// NeverMap is a Threshold that always streams.
func NeverMap(string) int64 { return math.MaxInt64 }

// AlwaysMap is a Threshold that maps every file.
func AlwaysMap(string) int64 { return -1 }
