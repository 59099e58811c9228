package locales

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxHeaderLength guards against oversized Accept-Language headers.
const maxHeaderLength = 4096

type weightedTag struct {
	tag string
	q   float64
}

// Negotiate picks the best locale from the set for an Accept-Language header.
// Quality values are honored, exact matches beat base-language matches, and
// the set's default is returned when nothing matches or the header is empty.
func Negotiate(header string, s Set) string {
	def := s.Default("")
	if header == "" || len(s) == 0 {
		return def
	}

	tags := parseHeader(header)

	// Phase 1: exact identifier match in preference order.
	for _, t := range tags {
		for _, l := range s {
			if strings.EqualFold(t.tag, l) {
				return l
			}
		}
	}

	// Phase 2: base-language match ("en-GB" header matches an "en" build,
	// and vice versa).
	for _, t := range tags {
		lang := Language(t.tag)
		for _, l := range s {
			if strings.EqualFold(lang, Language(l)) {
				return l
			}
		}
	}

	return def
}

func parseHeader(header string) []weightedTag {
	if len(header) > maxHeaderLength {
		header = header[:maxHeaderLength]
	}

	var tags []weightedTag
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		tagAndQ := strings.Split(part, ";")
		tag := strings.TrimSpace(tagAndQ[0])
		if tag == "" || tag == "*" {
			continue
		}

		q := 1.0
		if len(tagAndQ) > 1 {
			qPart := strings.TrimSpace(tagAndQ[1])
			if v, ok := strings.CutPrefix(qPart, "q="); ok {
				if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
					q = parsed
				}
			}
		}

		tags = append(tags, weightedTag{tag: tag, q: q})
	}

	slices.SortStableFunc(tags, func(a, b weightedTag) int {
		return cmp.Compare(b.q, a.q)
	})

	return tags
}
