package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/lokum/core"
)

func TestBuildEmbeddingText(t *testing.T) {
	t.Run("all sections present", func(t *testing.T) {
		text := BuildEmbeddingText(&core.Listing{
			Title:              "Przytulne 2 pokoje",
			Description:        "Jasne mieszkanie po remoncie.",
			FeaturesByCategory: "balkon, winda",
			City:               "Warszawa",
			District:           "Mokotów",
			Neighbourhood:      "Sielce",
		})

		assert.Equal(t,
			"Title: Przytulne 2 pokoje\n"+
				"Description: Jasne mieszkanie po remoncie.\n"+
				"Features: balkon, winda\n"+
				"Location: Warszawa, Mokotów, Sielce",
			text)
	})

	t.Run("empty sections are omitted", func(t *testing.T) {
		text := BuildEmbeddingText(&core.Listing{
			Title: "Kawalerka",
			City:  "Kraków",
		})

		assert.Equal(t, "Title: Kawalerka\nLocation: Kraków", text)
	})

	t.Run("no content yields empty string", func(t *testing.T) {
		assert.Empty(t, BuildEmbeddingText(&core.Listing{Id: "x"}))
	})

	t.Run("same listing renders identically", func(t *testing.T) {
		l := &core.Listing{Title: "Dom", Description: "Z ogrodem", City: "Gdańsk"}
		assert.Equal(t, BuildEmbeddingText(l), BuildEmbeddingText(l))
	})
}

func TestBuildVectorMeta(t *testing.T) {
	meta := BuildVectorMeta(&core.Listing{
		Scope:        core.ScopeRent,
		City:         "Warszawa",
		District:     "Wola",
		RoomCount:    2,
		Price:        3200,
		BuildingType: "blok",
		Description:  "opis",
	})

	assert.Equal(t, core.ScopeRent, meta.Scope)
	assert.Equal(t, "Warszawa", meta.City)
	assert.Equal(t, "Wola", meta.District)
	assert.Equal(t, 2, meta.RoomCount)
	assert.Equal(t, 3200, meta.Price)
	assert.Equal(t, "blok", meta.BuildingType)
	assert.True(t, meta.HasDescription)
	assert.False(t, meta.HasFeatures)
}
