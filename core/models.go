package core

//go:generate go run ../cmd/musgen

// Scope identifies which logical collection a listing belongs to.
type Scope string

const (
	// ScopeRent is the rental listings collection.
	ScopeRent Scope = "rent"
	// ScopeSale is the sale listings collection.
	ScopeSale Scope = "sale"
	// ScopeBoth selects both collections. Valid only in queries, never on a
	// stored listing.
	ScopeBoth Scope = "both"
)

// QueryScopes expands a query scope selector into the concrete collection
// scopes it covers. ScopeBoth expands to rent then sale; an unknown value
// expands to nothing.
func QueryScopes(s Scope) []Scope {
	switch s {
	case ScopeRent:
		return []Scope{ScopeRent}
	case ScopeSale:
		return []Scope{ScopeSale}
	case ScopeBoth:
		return []Scope{ScopeRent, ScopeSale}
	default:
		return nil
	}
}

// Listing represents one property advertisement.
// Optional attributes use pointer types: nil means unknown, which is distinct
// from false/zero and never matched by a filter.
type Listing struct {
	Id          string `bson:"_id"`
	Link        string `bson:"link,omitempty"`
	Scope       Scope  `bson:"-"`
	Title       string `bson:"title,omitempty"`
	Description string `bson:"description,omitempty"`
	// FeaturesByCategory is the flattened feature-category text blob
	// produced at scrape time.
	FeaturesByCategory string `bson:"features_by_category,omitempty"`

	Province      string `bson:"province,omitempty"`
	City          string `bson:"city,omitempty"`
	District      string `bson:"district,omitempty"`
	Neighbourhood string `bson:"neighbourhood,omitempty"`
	Street        string `bson:"street,omitempty"`
	HouseNumber   string `bson:"house_number,omitempty"`

	Price     int     `bson:"price,omitempty"`
	RoomCount int     `bson:"room_count,omitempty"`
	SpaceSM   float64 `bson:"space_sm,omitempty"`
	Floor     *int    `bson:"floor,omitempty"` // 0 = ground floor

	BuildingType     string `bson:"building_type,omitempty"`
	BuildingMaterial string `bson:"building_material,omitempty"`
	BuildYear        int    `bson:"build_year,omitempty"`
	Heating          string `bson:"ogrzewanie,omitempty"`
	Representative   string `bson:"representative,omitempty"`

	HasGarage          *bool `bson:"has_garage,omitempty"`
	HasParking         *bool `bson:"has_parking,omitempty"`
	HasBalcony         *bool `bson:"has_balcony,omitempty"`
	HasElevator        *bool `bson:"has_elevator,omitempty"`
	HasAirConditioning *bool `bson:"has_air_conditioning,omitempty"`
	PetsAllowed        *bool `bson:"pets_allowed,omitempty"`
	Furnished          *bool `bson:"furnished,omitempty"`

	// Rent is set only for ScopeRent listings.
	Rent *RentDetails `bson:",inline"`
	// Sale is set only for ScopeSale listings.
	Sale *SaleDetails `bson:",inline"`
}

// RentDetails holds attributes that are only meaningful for rental listings.
type RentDetails struct {
	// Czynsz is the monthly administrative rent surcharge.
	Czynsz int `bson:"czynsz,omitempty"`
}

// SaleDetails holds attributes that are only meaningful for sale listings.
type SaleDetails struct {
	MarketType  string `bson:"market_type,omitempty"`
	FinishState string `bson:"stan_wykonczenia,omitempty"`
}

// HasTextContent reports whether the listing carries any text worth embedding.
func (l *Listing) HasTextContent() bool {
	return l.Title != "" || l.Description != "" || l.FeaturesByCategory != ""
}

// VectorMeta is the metadata stored alongside an embedding. It exists for
// external introspection and filtering; ranking never reads it.
type VectorMeta struct {
	Scope          Scope
	City           string
	District       string
	RoomCount      int
	Price          int
	BuildingType   string
	HasDescription bool
	HasFeatures    bool
}

// ListingVector is the derived projection of a Listing into the vector index:
// one embedding over the listing's canonical text rendering, keyed by the
// listing id. At most one ListingVector exists per id.
type ListingVector struct {
	Id     string
	Text   string
	Vector []float32
	Meta   VectorMeta
}

// ScoredDocument is a single reranker hit: the indexed document with its raw
// similarity score. Higher is better, cosine range [-1, 1].
type ScoredDocument struct {
	Id    string
	Score float32
	Text  string
	Meta  VectorMeta
}

// Relevance tags describing how a search result was produced.
const (
	// RelevanceHybrid marks results ranked by the semantic reranker.
	RelevanceHybrid = "hybrid_match"
	// RelevanceFilter marks results produced by the structured filter alone.
	RelevanceFilter = "filter_match"
)

// ScoredListing is a hybrid search result: the full listing enriched with a
// similarity score and a provenance tag.
type ScoredListing struct {
	Listing       *Listing
	SemanticScore float32
	Relevance     string
}
