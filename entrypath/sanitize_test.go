package entrypath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "com/example/Foo.class", "com/example/Foo.class"},
		{"parent only", "../", ""},
		{"leading parents", "../../etc/passwd", "etc/passwd"},
		{"mixed", "a//b/./c/../d", "a/b/d"},
		{"consecutive parents", "a/b/../../c", "c"},
		{"parent of first segment", "a/../b", "b"},
		{"absolute", "/etc/passwd", "etc/passwd"},
		{"many leading slashes", "///x", "x"},
		{"leading dot", "./a/b", "a/b"},
		{"dot parent mix", "./../.././a", "a"},
		{"triple slash", "a///b", "a/b"},
		{"overlapping current", "a/././b", "a/b"},
		{"current then parent", "a/./../b", "a/b"},
		{"bare dot", ".", ""},
		{"bare parent", "..", ""},
		{"parents collapse to bare parent", "a/../..", ""},
		{"trailing parent kept", "a/b/..", "a/b/.."},
		{"trailing slash kept", "META-INF/", "META-INF/"},
		{"dots in names", "a/..b/c..", "a/..b/c.."},
		{"deep escape", "x/../../../../tmp/evil", "tmp/evil"},
		{"slash dot slash at start", "/./a", "a"},
		{"backslashes untouched", `a\..\b`, `a\..\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Sanitize(got), "sanitize must be idempotent")
			assertSanitized(t, got)
		})
	}
}

func TestSanitizeAll(t *testing.T) {
	got := SanitizeAll([]string{"../a", "b//c", ""})
	assert.Equal(t, []string{"a", "b/c", ""}, got)
}

func assertSanitized(t *testing.T, p string) {
	t.Helper()
	for _, prefix := range []string{"/", "./", "../"} {
		assert.False(t, strings.HasPrefix(p, prefix), "%q starts with %q", p, prefix)
	}
	for _, sub := range []string{"/../", "/./", "//"} {
		assert.NotContains(t, p, sub)
	}
	assert.NotEqual(t, "..", p)
}

func FuzzSanitize(f *testing.F) {
	// Seed typical traversal shapes
	for _, seed := range []string{
		"", "../", "../../etc/passwd", "a//b/./c/../d", "a/b/../../c",
		"/./../", "..//..//", "a/.//../b", "....//....", "./.",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, p string) {
		got := Sanitize(p)
		if again := Sanitize(got); again != got {
			t.Fatalf("not idempotent: %q -> %q -> %q", p, got, again)
		}
		for _, prefix := range []string{"/", "./", "../"} {
			if strings.HasPrefix(got, prefix) {
				t.Fatalf("%q sanitized to %q, starts with %q", p, got, prefix)
			}
		}
		for _, sub := range []string{"/../", "/./", "//"} {
			if strings.Contains(got, sub) {
				t.Fatalf("%q sanitized to %q, contains %q", p, got, sub)
			}
		}
		if got == ".." || len(got) > len(p) {
			t.Fatalf("%q sanitized to %q", p, got)
		}
	})
}

func BenchmarkSanitize(b *testing.B) {
	paths := []string{
		"com/example/app/Main.class",
		"../../../../etc/passwd",
		"a//b/./c/../d/./e//f/../g",
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Sanitize(paths[i%len(paths)])
	}
}
