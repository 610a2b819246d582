// Package classify projects the free-text category/stage labels on items
// onto a small controlled vocabulary used for faceting and feed ranking.
// Upstream text is inconsistent prose, so classification is a best-effort
// keyword match; values that match no rule are dropped from faceting
// rather than reported as errors.
package classify

import "strings"

// rule maps any of its keywords (substring, lower-cased) to a canonical
// facet value. Rules are evaluated top to bottom, first match wins, so
// order is load-bearing: "phase iii" must be tested before "phase i".
type rule struct {
	keywords []string
	value    string
}

var categoryRules = []rule{
	{[]string{"rate control"}, "Rate Control"},
	{[]string{"rhythm control", "antiarrhythmic"}, "Rhythm Control"},
	{[]string{"pfa"}, "PFA Ablation"},
	{[]string{"rf", "cryo", "thermal"}, "Thermal Ablation"},
	{[]string{"stroke prevention", "anticoagulant", "fxi", "laa"}, "Stroke Prevention"},
}

var stageRules = []rule{
	{[]string{"approved", "cleared", "market"}, "Approved"},
	{[]string{"pre-registration", "pre-registered"}, "Pre-registered"},
	{[]string{"phase iii", "phase 3"}, "Phase III"},
	{[]string{"phase ii", "phase 2"}, "Phase II"},
	{[]string{"phase i", "phase 1"}, "Phase I"},
	{[]string{"pivotal"}, "Pivotal"},
	{[]string{"preclinical", "pre-clinical"}, "Preclinical"},
}

func match(rules []rule, raw string) (string, bool) {
	text := strings.ToLower(raw)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.value, true
			}
		}
	}
	return "", false
}

// Category maps raw category text to its canonical facet value. The
// second return is false when no rule matches.
func Category(raw string) (string, bool) {
	return match(categoryRules, raw)
}

// Stage maps raw stage text to its canonical facet value.
func Stage(raw string) (string, bool) {
	return match(stageRules, raw)
}

// StagePriority ranks raw stage text for feed ordering; lower sorts
// first. Late-stage programs outrank early ones, and already-approved
// therapies sink to the bottom since their news is rarely new. This
// ranking is independent of the Stage facet mapping.
func StagePriority(raw string) int {
	text := strings.ToLower(raw)
	switch {
	case strings.Contains(text, "phase iii"), strings.Contains(text, "phase 3"):
		return 1
	case strings.Contains(text, "phase ii"), strings.Contains(text, "phase 2"):
		return 2
	case strings.Contains(text, "phase i"), strings.Contains(text, "phase 1"):
		return 3
	case strings.Contains(text, "pivotal"):
		return 4
	case strings.Contains(text, "preclinical"), strings.Contains(text, "pre-clinical"):
		return 5
	case strings.Contains(text, "approved"), strings.Contains(text, "cleared"):
		return 9
	default:
		return 6
	}
}
