// Package dedupe provides shared singleflight groups used to collapse
// concurrent requests for the same work into one execution.
package dedupe

import "golang.org/x/sync/singleflight"

// MatchGroup deduplicates match completions keyed by keys.MatchKey. While
// one completion runs, other callers for the same match wait and receive
// its result instead of applying progression a second time.
var MatchGroup singleflight.Group
