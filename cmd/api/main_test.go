package main

import (
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/Mirieri/nikonangombeghani-api/internal/infrastructure/db/postgres"
)

func prefixes[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestResourcePrefixes(t *testing.T) {
	herd := herdResources(nil, postgres.NewCattleRepository(nil), zerolog.Nop())
	assert.Equal(t, []string{
		"/calvings",
		"/cattle",
		"/cattle_ownership_histories",
		"/farmers",
		"/inseminations",
		"/locations",
		"/milk_productions",
		"/pedigrees",
		"/weight_records",
	}, prefixes(herd))

	open := openResources(nil, zerolog.Nop())
	assert.Equal(t, []string{"/favorites", "/trades"}, prefixes(open))
}
