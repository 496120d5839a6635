package engine

// Persisted progress fields only ever move forward. Every one-way field in
// the engine goes through these two helpers instead of ad hoc comparisons.

// raiseScore keeps the higher of the stored and freshly computed value.
func raiseScore(current, computed float64) float64 {
	if computed > current {
		return computed
	}
	return current
}

// latchBool flips false->true and never back.
func latchBool(current, computed bool) bool {
	return current || computed
}
