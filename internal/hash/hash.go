// Package hash produces the short, stable identifiers used for file keys,
// grouping keys and generated import names.
package hash

import (
	"encoding/base32"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// String returns an 8 character lowercase base32 digest of str.
func String(str string) string {
	return Short(str, 8)
}

// Short returns the first n characters of the digest of str (at most 13).
func Short(str string, n int) string {
	h := xxhash.New()
	//nolint
	h.WriteString(str)
	sum := strings.ToLower(encoding.EncodeToString(h.Sum(nil)))
	if n > len(sum) {
		n = len(sum)
	}
	return sum[:n]
}
