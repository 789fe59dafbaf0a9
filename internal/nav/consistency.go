package nav

import (
	"fmt"

	"finitefield.org/rustguide-web/internal/locale"
)

// WarningKind classifies a parity problem.
type WarningKind string

const (
	// MissingHref: the reference lists the href, the locale does not.
	MissingHref WarningKind = "missing"
	// ExtraHref: the locale lists an href the reference does not.
	ExtraHref WarningKind = "extra"
	// ReorderedHref: both list the href but at different relative positions.
	ReorderedHref WarningKind = "reordered"
)

// ConsistencyWarning is a non-fatal divergence between a locale's flattened
// href sequence and the reference locale's. Positions are indexes into the
// flattened sequences; -1 means not present.
type ConsistencyWarning struct {
	Locale            locale.Locale `json:"locale"`
	Reference         locale.Locale `json:"reference"`
	Kind              WarningKind   `json:"kind"`
	Href              string        `json:"href"`
	Position          int           `json:"position"`
	ReferencePosition int           `json:"referencePosition"`
}

func (w ConsistencyWarning) String() string {
	switch w.Kind {
	case MissingHref:
		return fmt.Sprintf("%s: missing %s (%s position %d)", w.Locale, w.Href, w.Reference, w.ReferencePosition)
	case ExtraHref:
		return fmt.Sprintf("%s: extra %s at position %d (absent from %s)", w.Locale, w.Href, w.Position, w.Reference)
	default:
		return fmt.Sprintf("%s: %s at position %d, %s has it at %d", w.Locale, w.Href, w.Position, w.Reference, w.ReferencePosition)
	}
}

// CheckParity compares the flattened hrefs of other against ref. Hrefs are
// matched as a multiset, so a duplicated link counts once per occurrence.
func CheckParity(refLocale locale.Locale, ref []Section, otherLocale locale.Locale, other []Section) []ConsistencyWarning {
	refHrefs := Hrefs(ref)
	otherHrefs := Hrefs(other)

	var warnings []ConsistencyWarning
	mk := func(kind WarningKind, href string, pos, refPos int) ConsistencyWarning {
		return ConsistencyWarning{
			Locale:            otherLocale,
			Reference:         refLocale,
			Kind:              kind,
			Href:              href,
			Position:          pos,
			ReferencePosition: refPos,
		}
	}

	type occurrence struct {
		href string
		pos  int
	}

	budget := counts(otherHrefs)
	var commonRef []occurrence
	for i, h := range refHrefs {
		if budget[h] == 0 {
			warnings = append(warnings, mk(MissingHref, h, -1, i))
			continue
		}
		budget[h]--
		commonRef = append(commonRef, occurrence{h, i})
	}

	budget = counts(refHrefs)
	var commonOther []occurrence
	for i, h := range otherHrefs {
		if budget[h] == 0 {
			warnings = append(warnings, mk(ExtraHref, h, i, -1))
			continue
		}
		budget[h]--
		commonOther = append(commonOther, occurrence{h, i})
	}

	// both common lists hold the same multiset, so they have equal length
	refPositions := map[string][]int{}
	for _, o := range commonRef {
		refPositions[o.href] = append(refPositions[o.href], o.pos)
	}
	for i, o := range commonOther {
		refPos := refPositions[o.href][0]
		refPositions[o.href] = refPositions[o.href][1:]
		if commonRef[i].href != o.href {
			warnings = append(warnings, mk(ReorderedHref, o.href, o.pos, refPos))
		}
	}
	return warnings
}

func counts(hrefs []string) map[string]int {
	m := make(map[string]int, len(hrefs))
	for _, h := range hrefs {
		m[h]++
	}
	return m
}
