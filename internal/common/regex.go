package common

import (
	"regexp"
	"strings"
)

// CompileInsensitive compiles a regex pattern, making it case-insensitive
// unless the pattern already carries an inline flag.
func CompileInsensitive(pattern string) (*regexp.Regexp, error) {
	if !strings.HasPrefix(pattern, "(?i)") {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// MustCompileInsensitive is CompileInsensitive for statically known patterns.
func MustCompileInsensitive(pattern string) *regexp.Regexp {
	re, err := CompileInsensitive(pattern)
	if err != nil {
		panic(err)
	}
	return re
}
