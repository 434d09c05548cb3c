package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relationhq/relmig/internal/domain/entities"
)

func testCustomers() []entities.Customer {
	return []entities.Customer{
		{ID: "c-1", Name: "Veidekke Entreprenør AS", OrgNumber: "910000001"},
		{ID: "c-2", Name: "PEAB Bygg AS", OrgNumber: "910000002"},
		{ID: "c-3", Name: "Norbygg AS", OrgNumber: "910000003"},
	}
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r := NewResolver(NewNormalizer(entities.DefaultAliases))
	r.Load(testCustomers())
	return r
}

func TestResolver_Load_Idempotent(t *testing.T) {
	r := newTestResolver(t)
	require.Equal(t, 3, r.Size())

	// A second load must not change the snapshot.
	r.Load([]entities.Customer{{ID: "c-9", Name: "Somebody Else AS"}})
	assert.Equal(t, 3, r.Size())
	_, ok := r.Resolve("Somebody Else")
	assert.False(t, ok)
}

func TestResolver_Load_LastWriterWins(t *testing.T) {
	r := NewResolver(NewNormalizer(nil))
	r.Load([]entities.Customer{
		{ID: "c-1", Name: "Nordbygg AS"},
		{ID: "c-2", Name: "NORDBYGG A/S"}, // Same canonical name
	})

	require.Equal(t, 1, r.Size())
	match, ok := r.Resolve("nordbygg")
	require.True(t, ok)
	assert.Equal(t, "c-2", match.CustomerID)
	assert.Equal(t, "NORDBYGG A/S", match.DisplayName)
}

func TestResolver_Resolve(t *testing.T) {
	r := newTestResolver(t)

	t.Run("exact after normalization", func(t *testing.T) {
		match, ok := r.Resolve("peab bygg")
		require.True(t, ok)
		assert.Equal(t, "c-2", match.CustomerID)
		assert.Equal(t, "PEAB Bygg AS", match.DisplayName)
	})

	t.Run("via alias", func(t *testing.T) {
		// "PEAB" maps to "peab bygg" in the default alias table.
		match, ok := r.Resolve("PEAB")
		require.True(t, ok)
		assert.Equal(t, "c-2", match.CustomerID)
	})

	t.Run("no match is a routine outcome", func(t *testing.T) {
		_, ok := r.Resolve("Helt Ukjent Entreprenør")
		assert.False(t, ok)
	})

	t.Run("empty name never matches", func(t *testing.T) {
		_, ok := r.Resolve("   ")
		assert.False(t, ok)
	})
}

func TestResolver_Resolve_AliasVariantsShareIdentity(t *testing.T) {
	r := newTestResolver(t)

	// All spellings collapse to the same canonical entity.
	variants := []string{"Veidekke AS", "veidekke entreprenør", "VEIDEKKE  Bygg"}
	for _, v := range variants {
		match, ok := r.Resolve(v)
		require.True(t, ok, "variant %q should resolve", v)
		assert.Equal(t, "c-1", match.CustomerID, "variant %q", v)
	}
}

func TestResolver_Score(t *testing.T) {
	r := NewResolver(NewNormalizer(nil))

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical canonical forms", "Nordbygg AS", "nordbygg", 1.0},
		{"substring", "Veidekke", "Veidekke Entreprenør", 0.9},
		{"word overlap one of three", "Straye Tak AS", "Straye Bygg", 1.0 / 3},
		{"no overlap", "Hansen & Dahl", "Peab Bygg", 0.0},
		{"empty vs nonempty", "", "Nordbygg", 0.0},
		{"both empty", "", "", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, r.Score(tt.a, tt.b), 1e-9)
		})
	}
}

func TestResolver_Score_Symmetric(t *testing.T) {
	r := NewResolver(NewNormalizer(entities.DefaultAliases))

	pairs := [][2]string{
		{"Veidekke AS", "Veidekke Entreprenør"},
		{"Straye Tak", "Straye Stålbygg AS"},
		{"Hansen & Dahl", "Peab Bygg"},
		{"", "Nordbygg"},
	}
	for _, p := range pairs {
		assert.Equal(t, r.Score(p[0], p[1]), r.Score(p[1], p[0]), "score(%q,%q)", p[0], p[1])
	}
}

func TestResolver_BestMatch(t *testing.T) {
	t.Run("picks highest score", func(t *testing.T) {
		r := newTestResolver(t)
		match, score, ok := r.BestMatch("Veidekke Entreprenør")
		require.True(t, ok)
		assert.Equal(t, "c-1", match.CustomerID)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("ties go to the customer loaded first", func(t *testing.T) {
		r := NewResolver(NewNormalizer(nil))
		r.Load([]entities.Customer{
			{ID: "first", Name: "Alpha Bygg"},
			{ID: "second", Name: "Alpha Tak"},
		})

		// "Alpha Eiendom" scores 1/3 against both.
		match, score, ok := r.BestMatch("Alpha Eiendom")
		require.True(t, ok)
		assert.InDelta(t, 1.0/3, score, 1e-9)
		assert.Equal(t, "first", match.CustomerID)
	})

	t.Run("empty snapshot", func(t *testing.T) {
		r := NewResolver(NewNormalizer(nil))
		r.Load(nil)
		_, _, ok := r.BestMatch("Nordbygg")
		assert.False(t, ok)
	})
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandConfident, BandFor(1.0))
	assert.Equal(t, BandConfident, BandFor(0.95))
	assert.Equal(t, BandProbable, BandFor(0.9))
	assert.Equal(t, BandProbable, BandFor(0.6))
	assert.Equal(t, BandNeedsReview, BandFor(0.59))
	assert.Equal(t, BandNeedsReview, BandFor(0.0))
}

func TestResolver_AliasRoundTrip(t *testing.T) {
	// Every alias key resolves to its canonical entity with score 1.0 once
	// that entity is loaded.
	normalizer := NewNormalizer(entities.DefaultAliases)
	r := NewResolver(normalizer)

	customers := make([]entities.Customer, 0, len(entities.DefaultAliases))
	seen := make(map[string]bool)
	for _, canonical := range entities.DefaultAliases {
		if !seen[canonical] {
			seen[canonical] = true
			customers = append(customers, entities.Customer{ID: canonical, Name: canonical})
		}
	}
	r.Load(customers)

	for key := range entities.DefaultAliases {
		match, ok := r.Resolve(key)
		require.True(t, ok, "alias key %q should resolve", key)
		assert.InDelta(t, 1.0, r.Score(key, match.DisplayName), 1e-9, "alias key %q", key)
	}
}
