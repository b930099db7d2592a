package storage

import (
	"testing"

	"github.com/poiesic/lokum/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalListingVector(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		vec := &core.ListingVector{
			Id:     "ID4xqpn",
			Text:   "Title: Mieszkanie 3-pokojowe\nLocation: Warszawa, Mokotów",
			Vector: []float32{0.1, -0.5, 0.85},
			Meta: core.VectorMeta{
				Scope:          core.ScopeRent,
				City:           "Warszawa",
				District:       "Mokotów",
				RoomCount:      3,
				Price:          4200,
				BuildingType:   "blok",
				HasDescription: true,
				HasFeatures:    false,
			},
		}

		data := MarshalListingVector(vec)
		got, err := UnmarshalListingVector(data)
		require.NoError(t, err)
		assert.Equal(t, vec, got)
	})

	t.Run("empty fields", func(t *testing.T) {
		vec := &core.ListingVector{Id: "x", Meta: core.VectorMeta{Scope: core.ScopeSale}}
		got, err := UnmarshalListingVector(MarshalListingVector(vec))
		require.NoError(t, err)
		assert.Equal(t, vec.Id, got.Id)
		assert.Equal(t, core.ScopeSale, got.Meta.Scope)
		assert.Empty(t, got.Vector)
	})

	t.Run("truncated data fails", func(t *testing.T) {
		vec := &core.ListingVector{Id: "ID4xqpn", Vector: []float32{1, 2, 3}}
		data := MarshalListingVector(vec)
		_, err := UnmarshalListingVector(data[:len(data)/2])
		assert.Error(t, err)
	})
}

func TestMarshalScope(t *testing.T) {
	for _, s := range []core.Scope{core.ScopeRent, core.ScopeSale} {
		data := MarshalScope(s)
		got, err := UnmarshalScope(data)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}
