package services

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relationhq/relmig/internal/domain/entities"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSequenceAssigner_Assign_ChronologicalOrder(t *testing.T) {
	a := NewSequenceAssigner("TK")

	// Input deliberately out of chronological order; the absent-date offer
	// falls back to its created-at year.
	offers := []entities.Offer{
		{ExternalReference: "22003", SentDate: datePtr(2024, time.March, 1)},
		{ExternalReference: "22001", SentDate: datePtr(2024, time.January, 15)},
		{ExternalReference: "22002", CreatedAt: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)},
	}

	got, err := a.Assign(offers)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Output keeps input order; numbering follows the sorted order.
	assert.Equal(t, "TK-2024-002", got[0].OfferNumber)
	assert.Equal(t, "TK-2024-001", got[1].OfferNumber)
	assert.Equal(t, "TK-2024-003", got[2].OfferNumber) // no sent date sorts last
}

func TestSequenceAssigner_Assign_PerYearReset(t *testing.T) {
	a := NewSequenceAssigner("TK")

	offers := []entities.Offer{
		{ExternalReference: "a", SentDate: datePtr(2023, time.May, 1)},
		{ExternalReference: "b", SentDate: datePtr(2023, time.June, 1)},
		{ExternalReference: "c", SentDate: datePtr(2024, time.January, 1)},
	}

	got, err := a.Assign(offers)
	require.NoError(t, err)

	assert.Equal(t, "TK-2023-001", got[0].OfferNumber)
	assert.Equal(t, "TK-2023-002", got[1].OfferNumber)
	assert.Equal(t, "TK-2024-001", got[2].OfferNumber) // counter restarts per year
}

func TestSequenceAssigner_Assign_TieBreakOnExternalReference(t *testing.T) {
	a := NewSequenceAssigner("TK")
	sameDay := datePtr(2024, time.February, 2)

	offers := []entities.Offer{
		{ExternalReference: "22010", SentDate: sameDay},
		{ExternalReference: "22005", SentDate: sameDay},
	}

	got, err := a.Assign(offers)
	require.NoError(t, err)

	assert.Equal(t, "TK-2024-002", got[0].OfferNumber)
	assert.Equal(t, "TK-2024-001", got[1].OfferNumber)
}

func TestSequenceAssigner_Assign_DeterministicUnderPermutation(t *testing.T) {
	a := NewSequenceAssigner("TK")

	base := make([]entities.Offer, 0, 50)
	for i := 0; i < 50; i++ {
		o := entities.Offer{ExternalReference: strconv.Itoa(22000 + i)}
		if i%5 != 0 { // Every fifth offer has no sent date
			o.SentDate = datePtr(2023+i%2, time.Month(1+i%12), 1+i%28)
		} else {
			o.CreatedAt = time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
		}
		base = append(base, o)
	}

	assigned, err := a.Assign(base)
	require.NoError(t, err)
	want := make(map[string]string, len(assigned))
	for _, o := range assigned {
		want[o.ExternalReference] = o.OfferNumber
	}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([]entities.Offer, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got, err := a.Assign(shuffled)
		require.NoError(t, err)
		for _, o := range got {
			assert.Equal(t, want[o.ExternalReference], o.OfferNumber,
				"offer %s must keep its number under permutation", o.ExternalReference)
		}
	}
}

func TestSequenceAssigner_Assign_YearFallsBackToCurrentDate(t *testing.T) {
	orig := timeNow
	timeNow = func() time.Time { return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC) }
	defer func() { timeNow = orig }()

	a := NewSequenceAssigner("TK")
	got, err := a.Assign([]entities.Offer{{ExternalReference: "x"}})
	require.NoError(t, err)
	assert.Equal(t, "TK-2025-001", got[0].OfferNumber)
}

func TestSequenceAssigner_Assign_Overflow(t *testing.T) {
	a := NewSequenceAssigner("TK")

	offers := make([]entities.Offer, 1000)
	for i := range offers {
		offers[i] = entities.Offer{
			ExternalReference: strconv.Itoa(10000 + i),
			SentDate:          datePtr(2024, time.January, 1),
		}
	}

	_, err := a.Assign(offers)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSequenceOverflow)
}

func TestSequenceAssigner_Assign_DoesNotMutateInput(t *testing.T) {
	a := NewSequenceAssigner("TK")
	offers := []entities.Offer{{ExternalReference: "a", SentDate: datePtr(2024, time.March, 1)}}

	_, err := a.Assign(offers)
	require.NoError(t, err)
	assert.Empty(t, offers[0].OfferNumber)
}
