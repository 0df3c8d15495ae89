// Package fnmatch translates shell glob patterns into regular expressions
// using Python's fnmatch.translate semantics: "*" and "?" match across "/"
// the way Go's path/filepath.Match deliberately does not, which matters for
// the stage's glob filter (C7), applied to whole repo-relative paths rather
// than single path components.
package fnmatch

import (
	"regexp"
	"strings"
)

// Match reports whether name matches the shell pattern glob, with "*"
// matching any sequence of characters (including "/") and "?" matching any
// single character.
func Match(name, glob string) bool {
	re, err := compile(glob)
	if err != nil {
		return false
	}
	return re.MatchString(name)
}

var cache = map[string]*regexp.Regexp{}

func compile(glob string) (*regexp.Regexp, error) {
	if re, ok := cache[glob]; ok {
		return re, nil
	}
	re, err := regexp.Compile(translate(glob))
	if err != nil {
		return nil, err
	}
	cache[glob] = re
	return re, nil
}

// translate converts a shell glob into an anchored regular expression,
// following fnmatch.translate: "*" becomes ".*", "?" becomes ".", "[...]"
// character classes pass through ("[!...]" becomes a negated class "[^...]"),
// and every other character is escaped literally.
func translate(glob string) string {
	var out strings.Builder
	out.WriteString("(?s)^")

	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case '*':
			out.WriteString(".*")
		case '?':
			out.WriteString(".")
		case '[':
			j := i + 1
			if j < len(runes) && (runes[j] == '!' || runes[j] == ']') {
				j++
			}
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				out.WriteString(`\[`)
				continue
			}
			class := string(runes[i+1 : j])
			class = strings.ReplaceAll(class, `\`, `\\`)
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			out.WriteString("[" + class + "]")
			i = j
		default:
			out.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	out.WriteString("$")
	return out.String()
}
