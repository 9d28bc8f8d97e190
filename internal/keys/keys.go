package keys

import (
	"sort"
	"strconv"
	"strings"
)

// MatchKey is the dedupe key for a match completion.
func MatchKey(matchID uint) string {
	return "match:" + strconv.FormatUint(uint64(matchID), 10)
}

// PlayerSetKey produces a canonical key for a set of player ids: sorted,
// de-duplicated and joined with commas. Suitable for log correlation of
// the players a match touched.
func PlayerSetKey(ids []uint) string {
	sorted := make([]uint, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, 0, len(sorted))
	for i, id := range sorted {
		if i > 0 && id == sorted[i-1] {
			continue
		}
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return strings.Join(parts, ",")
}
