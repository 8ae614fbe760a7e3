package format

import (
	"regexp"
)

var mdV1Specials = regexp.MustCompile("([_*\\[`])")

// EscapeMarkdown escapes characters that Telegram's legacy Markdown parse
// mode treats as formatting, so that arbitrary product names survive captions.
func EscapeMarkdown(text string) string {
	return mdV1Specials.ReplaceAllString(text, `\$1`)
}
