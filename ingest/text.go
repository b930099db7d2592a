package ingest

import (
	"strings"

	"github.com/poiesic/lokum/core"
)

// BuildEmbeddingText renders a listing into the canonical text fed to the
// embedding model. Sections are omitted when their source field is empty, so
// the rendering is deterministic for a given listing.
func BuildEmbeddingText(l *core.Listing) string {
	var parts []string

	if l.Title != "" {
		parts = append(parts, "Title: "+l.Title)
	}
	if l.Description != "" {
		parts = append(parts, "Description: "+l.Description)
	}
	if l.FeaturesByCategory != "" {
		parts = append(parts, "Features: "+l.FeaturesByCategory)
	}

	var location []string
	if l.City != "" {
		location = append(location, l.City)
	}
	if l.District != "" {
		location = append(location, l.District)
	}
	if l.Neighbourhood != "" {
		location = append(location, l.Neighbourhood)
	}
	if len(location) > 0 {
		parts = append(parts, "Location: "+strings.Join(location, ", "))
	}

	return strings.Join(parts, "\n")
}

// BuildVectorMeta projects the listing attributes stored alongside its
// embedding.
func BuildVectorMeta(l *core.Listing) core.VectorMeta {
	return core.VectorMeta{
		Scope:          l.Scope,
		City:           l.City,
		District:       l.District,
		RoomCount:      l.RoomCount,
		Price:          l.Price,
		BuildingType:   l.BuildingType,
		HasDescription: l.Description != "",
		HasFeatures:    l.FeaturesByCategory != "",
	}
}
