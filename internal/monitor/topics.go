package monitor

import "sort"

// DistinctTopics returns the unique topic strings present in snapshot, sorted
// lexicographically. It is a pure function of the snapshot: recomputing from
// scratch on every ledger change is cheap at ledger scale and cannot drift
// the way an incrementally maintained set could.
func DistinctTopics(snapshot []Message) []string {
	seen := make(map[string]struct{}, len(snapshot))
	topics := make([]string, 0, len(snapshot))
	for _, m := range snapshot {
		if _, ok := seen[m.Topic]; ok {
			continue
		}
		seen[m.Topic] = struct{}{}
		topics = append(topics, m.Topic)
	}
	sort.Strings(topics)
	return topics
}

// Filtered returns the subsequence of snapshot whose topic equals selected,
// preserving the snapshot's newest-first order. An empty selected string
// means no filter and returns the snapshot unchanged. A selected topic that
// no longer appears in the snapshot yields an empty view, not an error.
func Filtered(snapshot []Message, selected string) []Message {
	if selected == "" {
		return snapshot
	}
	out := make([]Message, 0, len(snapshot))
	for _, m := range snapshot {
		if m.Topic == selected {
			out = append(out, m)
		}
	}
	return out
}
