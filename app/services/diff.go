package services

// Diff computes the set differences between an old and a new key list:
// toAdd holds keys present only in newKeys, toRemove keys present only in
// oldKeys. Duplicates collapse and the order of the results is unspecified.
func Diff(oldKeys, newKeys []string) (toAdd, toRemove []string) {
	old := make(map[string]bool, len(oldKeys))
	for _, k := range oldKeys {
		old[k] = true
	}
	seen := make(map[string]bool, len(newKeys))
	for _, k := range newKeys {
		if seen[k] {
			continue
		}
		seen[k] = true
		if !old[k] {
			toAdd = append(toAdd, k)
		}
	}
	for _, k := range oldKeys {
		if old[k] && !seen[k] {
			toRemove = append(toRemove, k)
			old[k] = false
		}
	}
	return toAdd, toRemove
}
