package common

import "strings"

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used on passwords read from the terminal once they have been sent.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// SplitList splits s on sep, trims every element and drops empty ones.
// The result is never nil.
func SplitList(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
