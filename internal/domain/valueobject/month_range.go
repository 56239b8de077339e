package valueobject

// ExpandRange returns every month key from start to end inclusive, in
// chronological order. A start after end yields an empty slice.
func ExpandRange(start, end MonthKey) []MonthKey {
	n := MonthsBetween(start, end)
	if n == 0 {
		return []MonthKey{}
	}
	out := make([]MonthKey, 0, n)
	for k := start; len(out) < n; k = k.Next() {
		out = append(out, k)
	}
	return out
}

// InRange reports whether k lies within start..end inclusive.
func InRange(k, start, end MonthKey) bool {
	return k >= start && k <= end
}
