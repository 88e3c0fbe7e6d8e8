package metadata

import (
	"regexp"
	"strconv"
	"strings"
)

// namedEntities is the fixed table of named entities we resolve. Upstream
// markup is untrusted and captions frequently double-encode punctuation,
// so every extracted string must pass through DecodeEntities.
var namedEntities = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", `"`,
	"&apos;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
)

var numericEntityPattern = regexp.MustCompile(`&#(x[0-9a-fA-F]+|[0-9]+);`)

// DecodeEntities resolves numeric entities (&#NNN; and &#xHHHH;) and the
// fixed named-entity table. Named entities are resolved first so that
// double-encoded sequences like &amp;#x27; collapse in a single pass.
// Decoding is idempotent on already-decoded text.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	s = namedEntities.Replace(s)
	return numericEntityPattern.ReplaceAllStringFunc(s, func(m string) string {
		body := m[2 : len(m)-1]
		var n int64
		var err error
		if body[0] == 'x' {
			n, err = strconv.ParseInt(body[1:], 16, 32)
		} else {
			n, err = strconv.ParseInt(body, 10, 32)
		}
		if err != nil || n <= 0 {
			return m
		}
		return string(rune(n))
	})
}
