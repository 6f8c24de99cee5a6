package leaderboard

// Merge inserts one provisional session entry into an already ranked
// sequence at the position its score earns, then renumbers ranks. The
// persisted entries are not mutated; the session entry may represent a game
// that has not round-tripped through the server yet, so the merge is a pure
// function with no storage concerns.
func Merge(entries []Entry, provisional *Entry) []Entry {
	if provisional == nil {
		merged := make([]Entry, len(entries))
		copy(merged, entries)
		return merged
	}

	merged := make([]Entry, 0, len(entries)+1)
	inserted := false
	for _, entry := range entries {
		if !inserted && provisional.ranksBefore(entry) {
			merged = append(merged, *provisional)
			inserted = true
		}
		merged = append(merged, entry)
	}
	if !inserted {
		merged = append(merged, *provisional)
	}

	for index := range merged {
		merged[index].Rank = index + 1
	}
	return merged
}
