package snapshot

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	boundsRe = regexp.MustCompile(`bounds="\[(\d+),(\d+)\]\[(\d+),(\d+)\]"`)
	looseRe  = regexp.MustCompile(`text="([^"]*)"[^>]*?bounds="\[(\d+),(\d+)\]\[(\d+),(\d+)\]"`)
)

// Parse extracts one Element per well-formed bounds attribute in raw, in
// document order. Each element's remaining attributes are looked up in a
// window clamped to the enclosing tag, so state flags never leak across
// adjacent nodes. Parsing is total: malformed or truncated input degrades
// to fewer recognized elements, never an error.
func Parse(raw string) Snapshot {
	ms := boundsRe.FindAllStringSubmatchIndex(raw, -1)
	if len(ms) == 0 {
		return nil
	}

	snap := make(Snapshot, 0, len(ms))
	for i, m := range ms {
		// Window limits: never cross a neighboring bounds attribute.
		lo := 0
		if i > 0 {
			lo = ms[i-1][1]
		}
		hi := len(raw)
		if i+1 < len(ms) {
			hi = ms[i+1][0]
		}

		// Clamp to the enclosing tag when delimiters are present.
		ws := lo
		if lt := strings.LastIndex(raw[lo:m[0]], "<"); lt >= 0 {
			ws = lo + lt
		}
		we := hi
		if gt := strings.Index(raw[m[1]:hi], ">"); gt >= 0 {
			we = m[1] + gt + 1
		}

		win := raw[ws:we]
		snap = append(snap, Element{
			Text:       unescape(attr(win, "text")),
			ResourceID: unescape(attr(win, "resource-id")),
			ClassName:  attr(win, "class"),
			Bounds:     rectAt(raw, m),
			Clickable:  attr(win, "clickable") == "true",
			Enabled:    attr(win, "enabled") == "true",
			Focused:    attr(win, "focused") == "true",
		})
	}
	return snap
}

// ParseLoose pairs each text attribute with the next bounds attribute across
// a wider span, for dumps that lack node delimiters. It recognizes text and
// bounds only; callers needing state flags use Parse.
func ParseLoose(raw string) Snapshot {
	ms := looseRe.FindAllStringSubmatch(raw, -1)
	if len(ms) == 0 {
		return nil
	}

	snap := make(Snapshot, 0, len(ms))
	for _, m := range ms {
		snap = append(snap, Element{
			Text:   unescape(m[1]),
			Bounds: rectOf(m[2], m[3], m[4], m[5]),
		})
	}
	return snap
}

// ContainsText reports whether the raw dump contains text, case-insensitively.
// Used by synchronization predicates that need presence, not geometry.
func ContainsText(raw, text string) bool {
	return containsFold(raw, text)
}

// attr returns the value of key="..." inside window, or "" when absent.
// The key must not be preceded by a name character, so "clickable" does not
// match inside "long-clickable".
func attr(window, key string) string {
	marker := key + `="`
	for from := 0; ; {
		i := strings.Index(window[from:], marker)
		if i < 0 {
			return ""
		}
		i += from
		if i > 0 && isNameChar(window[i-1]) {
			from = i + 1
			continue
		}
		rest := window[i+len(marker):]
		j := strings.IndexByte(rest, '"')
		if j < 0 {
			return ""
		}
		return rest[:j]
	}
}

func isNameChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

var unescaper = strings.NewReplacer(
	"&quot;", `"`,
	"&apos;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

func unescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return unescaper.Replace(s)
}

func rectAt(raw string, m []int) Rect {
	return rectOf(raw[m[2]:m[3]], raw[m[4]:m[5]], raw[m[6]:m[7]], raw[m[8]:m[9]])
}

func rectOf(x1, y1, x2, y2 string) Rect {
	a, _ := strconv.Atoi(x1)
	b, _ := strconv.Atoi(y1)
	c, _ := strconv.Atoi(x2)
	d, _ := strconv.Atoi(y2)
	return Rect{X1: a, Y1: b, X2: c, Y2: d}
}
