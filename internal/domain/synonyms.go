package domain

import "sort"

// activitySynonyms maps canonical activity tags to related free-text terms
// used to widen full-text matching.
var activitySynonyms = map[string][]string{
	"hiking":      {"trail", "trek", "walking", "nature walk", "mountain", "wilderness"},
	"rafting":     {"river", "whitewater", "float", "paddle"},
	"skiing":      {"ski", "snow", "slopes", "backcountry"},
	"climbing":    {"rock", "mountaineering", "glacier", "ice climbing"},
	"fishing":     {"angling", "fly fishing", "salmon", "charter"},
	"biking":      {"cycling", "mountain bike", "bike tour"},
	"kayaking":    {"paddle", "sea kayak", "canoe"},
	"camping":     {"campground", "tent", "backcountry"},
	"wildlife":    {"bear", "moose", "whale", "bird watching", "safari"},
	"atv":         {"off-road", "four wheeler", "quad"},
	"hot springs": {"thermal", "soak", "spa"},
	"gold mine":   {"gold panning", "mining", "prospecting"},
}

// ExpandActivity returns the canonical tag followed by its synonyms.
func ExpandActivity(tag string) []string {
	tag = CanonicalTag(tag)
	if tag == "" {
		return nil
	}
	return append([]string{tag}, activitySynonyms[tag]...)
}

// ExpandActivities expands every tag and returns a de-duplicated, sorted term list.
func ExpandActivities(tags []string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, tag := range tags {
		for _, term := range ExpandActivity(tag) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)
	return terms
}
