package codec

import (
	"regexp"
	"strings"
)

var (
	tagPattern    = regexp.MustCompile(`</?[!#a-zA-Z_][^<>]*>`)
	legacyPattern = regexp.MustCompile(`[&§][0-9a-fk-orA-FK-OR#]`)
)

// Detect guesses the format of input. Structured documents ({ or [) are
// json, a leading "---" or "content:" key is yaml, anything with tags is
// markup, control codes mean legacy. Plain text is reported as markup, which
// parses it verbatim.
func Detect(input string) Format {
	trimmed := strings.TrimSpace(input)
	switch {
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return FormatJSON
	case strings.HasPrefix(trimmed, "---"), strings.HasPrefix(trimmed, "content:"):
		return FormatYAML
	case tagPattern.MatchString(input):
		return FormatMarkup
	case legacyPattern.MatchString(input):
		return FormatLegacy
	}
	return FormatMarkup
}
