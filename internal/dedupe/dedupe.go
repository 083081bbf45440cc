package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// concurrent catalog lookups. Only one load runs for a given key while
// other callers wait for its result.

import "golang.org/x/sync/singleflight"

// MovesGroup deduplicates move-list loads keyed by "moves:<pokemon id>".
var MovesGroup singleflight.Group

// SpeciesGroup deduplicates species catalog loads keyed by "species:all".
var SpeciesGroup singleflight.Group
