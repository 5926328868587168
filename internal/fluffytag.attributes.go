package internal

import "regexp"

// attrPattern matches name = "value" or name = 'value' pairs. The opening
// quote selects the closing delimiter; anything that does not match the
// pattern is ignored rather than rejected, since LLM output is best-effort
// markup.
var attrPattern = regexp.MustCompile(`(\w+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// ParseAttributes parses raw attribute text into a key/value map.
// Duplicate attribute names resolve last-write-wins. Empty input yields an
// empty, non-nil map.
func ParseAttributes(attrText string) map[string]string {
	attributes := make(map[string]string)
	if attrText == "" {
		return attributes
	}

	for _, m := range attrPattern.FindAllStringSubmatchIndex(attrText, -1) {
		name := attrText[m[2]:m[3]]
		// Group 2 is the double-quoted value, group 3 the single-quoted one.
		if m[4] >= 0 {
			attributes[name] = attrText[m[4]:m[5]]
		} else {
			attributes[name] = attrText[m[6]:m[7]]
		}
	}

	return attributes
}
