package repository

import (
	"sort"
	"strings"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
)

// SuggestNames returns up to limit distinct item names starting with prefix,
// compared case-insensitively, in ascending order.
func SuggestNames(stores []domain.Store, prefix string, limit int) []string {
	var all []string
	for _, s := range stores {
		for _, item := range s.Items {
			all = append(all, item.Name)
		}
	}
	return filterNames(all, prefix, limit)
}

// filterNames folds case with strings.ToLower, so non-ASCII letters match the
// same way on every source, and sorts by byte order.
func filterNames(all []string, prefix string, limit int) []string {
	names := []string{}
	if limit <= 0 {
		return names
	}

	lowered := strings.ToLower(prefix)
	seen := make(map[string]struct{})
	for _, name := range all {
		if _, ok := seen[name]; ok {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), lowered) {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePrefix turns a user prefix into a LIKE pattern using '\' as the escape character.
func likePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
