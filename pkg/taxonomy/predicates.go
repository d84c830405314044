package taxonomy

import "strings"

// ContainsAny matches when the lowercased message contains any keyword.
func ContainsAny(keywords []string) Predicate {
	folded := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = Lower(k); k != "" {
			folded = append(folded, k)
		}
	}
	return func(t Text) bool {
		for _, k := range folded {
			if strings.Contains(t.Lower, k) {
				return true
			}
		}
		return false
	}
}

// HasAnyPrefix matches on the raw message, so prefixes are case sensitive.
func HasAnyPrefix(prefixes []string) Predicate {
	return func(t Text) bool {
		for _, p := range prefixes {
			if p != "" && strings.HasPrefix(t.Raw, p) {
				return true
			}
		}
		return false
	}
}

// HasAnyMarker matches when the raw message contains any marker.
func HasAnyMarker(markers []string) Predicate {
	return func(t Text) bool {
		for _, m := range markers {
			if m != "" && strings.Contains(t.Raw, m) {
				return true
			}
		}
		return false
	}
}

// All matches when every predicate does.
func All(preds ...Predicate) Predicate {
	return func(t Text) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

// Never matches nothing. Categories using it are declared for the report
// layout but have no rule yet.
func Never(Text) bool {
	return false
}
