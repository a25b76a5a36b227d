package price

// Resolve picks one candidate. Among positive values the minimum wins (the
// payable price, not the struck-through list price). When no candidate is
// positive the first one is returned unchanged. An empty slice yields false.
func Resolve(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	best := -1
	for i, c := range candidates {
		if !c.Positive() {
			continue
		}
		if best < 0 || c.Value.Decimal.LessThan(candidates[best].Value.Decimal) {
			best = i
		}
	}

	if best < 0 {
		return candidates[0], true
	}
	return candidates[best], true
}

// Select returns the accepted candidate of a collection. A narrow hit is
// returned as is; anything else goes through Resolve.
func Select(c Collection) (Candidate, bool) {
	if c.Authoritative && len(c.Candidates) > 0 {
		return c.Candidates[0], true
	}
	return Resolve(c.Candidates)
}
