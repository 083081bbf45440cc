package keys

import (
	"sort"
	"strconv"
	"strings"
)

// NameKey canonicalizes a species or move name for lookups: trimmed,
// lower-cased, with spaces and underscores turned into hyphens.
func NameKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}

// MovesKey is the singleflight and cache key for a pokemon's move list.
func MovesKey(pokemonID uint) string {
	return "moves:" + strconv.FormatUint(uint64(pokemonID), 10)
}

// SpeciesIDsKey produces a canonical key for a set of species ids. Ids are
// de-duplicated and sorted so the same roster always maps to one key.
func SpeciesIDsKey(ids []uint) string {
	seen := make(map[uint]struct{}, len(ids))
	uniq := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })
	parts := make([]string, len(uniq))
	for i, id := range uniq {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return "species:" + strings.Join(parts, ",")
}
