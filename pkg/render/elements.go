package render

import "strings"

// inlineElements keep their children on one line in pretty output.
var inlineElements = wordSet(`
	a abbr b bdi bdo br cite code data dfn em i kbd mark q
	rb rp rt rtc ruby s samp small span strong sub sup time u var wbr
`)

// booleanAttrs render as a bare name when true and are omitted when false.
var booleanAttrs = wordSet(`
	allowfullscreen async autofocus autoplay checked controls default defer
	disabled formnovalidate hidden ismap itemscope loop multiple muted
	nomodule novalidate open playsinline readonly required reversed selected
`)

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
