package wiki

import (
	"regexp"
	"strings"
)

// ItemTemplateMarker opens the Item template block that carries per-gem fields.
const ItemTemplateMarker = "{{Item"

// SupportSectionMarkers locate the recommended-supports region of a gem page,
// tried in priority order. Matching is case-insensitive.
var SupportSectionMarkers = []string{
	"{{Recommended Support Gems",
	"Recommended Support Gems",
}

// ParseTemplate extracts the key/value fields of the first template block
// opened by marker. The scan is line-oriented: it runs from the marker to a
// line that trims to "}}", or to end of input for unterminated templates.
//
// A line containing "=" declares a field: the key is the text before the
// first "=" with its leading "|" stripped and whitespace trimmed, the value
// is everything after the first "=" trimmed, so values containing "=" stay
// intact. Declaring a key twice overwrites the earlier value. A line without
// "=" that does not start with "|" continues the current field; its trimmed
// content is appended after a newline, which is how multi-line stat text
// accumulates. Brace counting is not performed, so braces inside values do
// not end the block early.
//
// Returns (nil, false) when the marker does not occur in raw.
func ParseTemplate(raw, marker string) (GemRecord, bool) {
	start := strings.Index(raw, marker)
	if start < 0 {
		return nil, false
	}

	record := GemRecord{}
	currentKey := ""

	for _, line := range strings.Split(raw[start:], "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "}}" {
			break
		}

		if key, value, found := strings.Cut(line, "="); found {
			key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "|"))
			if key != "" {
				currentKey = key
				record[key] = strings.TrimSpace(value)
			}
			continue
		}

		// Continuation line for a multi-line field
		if currentKey != "" && !strings.HasPrefix(trimmed, "|") {
			record[currentKey] += "\n" + trimmed
		}
	}

	return record, true
}

// inlineLinkPattern matches the {{il|Name}} and {{il|Name|Display}} inline
// reference shortcodes; only the first argument names the linked gem.
var inlineLinkPattern = regexp.MustCompile(`\{\{il\|([^|}]+)(?:\|[^}]*)?\}\}`)

// ExtractSupportNames collects the gem names referenced in the recommended
// supports section of a page. Markers are tried in order and matched
// case-insensitively; if none occur the result is empty. The scan window
// ends at a "==" heading for an unrelated section or at a bare "}}" line,
// since recommendations live in free-form prose with no fixed terminator.
// Names are deduplicated case-sensitively in order of first appearance.
func ExtractSupportNames(raw string, markers []string) []string {
	const keyword = "recommended support"

	lower := strings.ToLower(raw)

	start := -1
	for _, marker := range markers {
		if idx := strings.Index(lower, strings.ToLower(marker)); idx >= 0 {
			start = idx
			break
		}
	}
	if start < 0 {
		return nil
	}

	var names []string
	seen := map[string]bool{}

	for _, line := range strings.Split(raw[start:], "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "==") && !strings.Contains(strings.ToLower(trimmed), keyword) {
			break
		}
		if trimmed == "}}" {
			break
		}

		for _, match := range inlineLinkPattern.FindAllStringSubmatch(line, -1) {
			name := strings.TrimSpace(match[1])
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}

// Cleaning patterns, applied in a fixed order so later patterns never
// re-match artifacts of earlier ones.
var (
	colorMacroPattern = regexp.MustCompile(`\{\{c\|[^|}]*\|([^}]*)\}\}`)
	wikiLinkPattern   = regexp.MustCompile(`\[\[(?:[^\]|]*\|)?([^\]]*)\]\]`)
	inlineTagPattern  = regexp.MustCompile(`<[^>]*>`)
)

// CleanText strips wiki markup from a field value, yielding display-ready
// text: colorization macros {{c|mode|text}} reduce to text, [[links]] and
// [[display|links]] reduce to their target, inline <tags> are removed, and
// non-breaking-space entities become ordinary spaces. Total and idempotent;
// pathologically nested input may leave partial artifacts behind.
func CleanText(raw string) string {
	s := colorMacroPattern.ReplaceAllString(raw, "$1")
	s = wikiLinkPattern.ReplaceAllString(s, "$1")
	s = inlineTagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return s
}

// SplitTags splits a comma-separated tag field into trimmed tags,
// dropping empty segments.
func SplitTags(tagField string) []string {
	var tags []string
	for _, t := range strings.Split(tagField, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// MatchesAnyTag reports whether a candidate's tag string contains any of the
// given tags as a substring. Containment is case-sensitive and deliberately
// loose: no tokenization, so "AoE" matches "AoE, Fire" and "Grenade" alike.
func MatchesAnyTag(tagString string, tags []string) bool {
	for _, tag := range tags {
		if strings.Contains(tagString, tag) {
			return true
		}
	}
	return false
}
