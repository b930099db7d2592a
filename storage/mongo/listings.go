package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/poiesic/lokum/core"
	"github.com/poiesic/lokum/storage"
)

const (
	// DefaultDatabase is the MongoDB database holding the listing collections.
	DefaultDatabase = "real_estate"

	rentCollection = "rent_listings"
	saleCollection = "sale_listings"
)

// ListingRepository implements storage.ListingRepository on MongoDB, with one
// collection per scope.
type ListingRepository struct {
	client *mongo.Client
	rent   *mongo.Collection
	sale   *mongo.Collection
	logger *slog.Logger
}

var _ storage.ListingRepository = (*ListingRepository)(nil)

// NewListingRepository creates a repository over the given client.
// An empty database name falls back to DefaultDatabase.
func NewListingRepository(client *mongo.Client, database string) *ListingRepository {
	if database == "" {
		database = DefaultDatabase
	}
	db := client.Database(database)
	return &ListingRepository{
		client: client,
		rent:   db.Collection(rentCollection),
		sale:   db.Collection(saleCollection),
		logger: slog.Default().With("component", "listing-repository"),
	}
}

// FindListings returns listings matching the criteria, up to limit, in the
// collection's natural order.
func (r *ListingRepository) FindListings(ctx context.Context, scope core.Scope, criteria *core.Criteria, limit int) ([]*core.Listing, error) {
	coll, err := r.collection(scope)
	if err != nil {
		return nil, err
	}

	filter := buildFilter(scope, criteria)

	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cur, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []*core.Listing
	for cur.Next(ctx) {
		var l core.Listing
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		normalizeDecoded(&l, scope)
		results = append(results, &l)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// GetListing retrieves a single listing by id.
func (r *ListingRepository) GetListing(ctx context.Context, scope core.Scope, id string) (*core.Listing, error) {
	coll, err := r.collection(scope)
	if err != nil {
		return nil, err
	}

	var l core.Listing
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	normalizeDecoded(&l, scope)
	return &l, nil
}

// UpsertListing inserts or replaces the stored document with the same id.
// A listing without an id gets one derived from its link.
func (r *ListingRepository) UpsertListing(ctx context.Context, listing *core.Listing) error {
	if listing != nil && listing.Id == "" {
		listing.Id = core.IDFromLink(listing.Link)
	}
	if err := core.ValidateListing(listing); err != nil {
		return err
	}

	coll, err := r.collection(listing.Scope)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": listing.Id}
	update := bson.D{{Key: "$set", Value: listing}}

	_, err = coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ForEachListing streams all listings of the scope to fn, optionally capped.
func (r *ListingRepository) ForEachListing(ctx context.Context, scope core.Scope, limit int, fn func(*core.Listing) error) error {
	coll, err := r.collection(scope)
	if err != nil {
		return err
	}

	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cur, err := coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var l core.Listing
		if err := cur.Decode(&l); err != nil {
			return err
		}
		normalizeDecoded(&l, scope)
		if err := fn(&l); err != nil {
			return err
		}
	}
	return cur.Err()
}

// Close disconnects the underlying client.
func (r *ListingRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *ListingRepository) collection(scope core.Scope) (*mongo.Collection, error) {
	switch scope {
	case core.ScopeRent:
		return r.rent, nil
	case core.ScopeSale:
		return r.sale, nil
	default:
		return nil, fmt.Errorf("%w: %w: %q", storage.ErrInvalidQuery, core.ErrInvalidScope, scope)
	}
}

// normalizeDecoded tags the decoded document with its collection scope and
// clears the variant details that don't belong to it. Inline decoding can
// allocate the wrong variant as an empty struct.
func normalizeDecoded(l *core.Listing, scope core.Scope) {
	l.Scope = scope
	switch scope {
	case core.ScopeRent:
		l.Sale = nil
		if l.Rent != nil && *l.Rent == (core.RentDetails{}) {
			l.Rent = nil
		}
	case core.ScopeSale:
		l.Rent = nil
		if l.Sale != nil && *l.Sale == (core.SaleDetails{}) {
			l.Sale = nil
		}
	}
}

// buildFilter translates criteria into a MongoDB filter document. Absent
// fields impose no constraint; city and district match as case-insensitive
// substrings, numeric bounds are inclusive.
func buildFilter(scope core.Scope, c *core.Criteria) bson.M {
	filter := bson.M{}
	if c == nil {
		return filter
	}

	if c.City != "" {
		filter["city"] = bson.M{"$regex": c.City, "$options": "i"}
	}
	if c.District != "" {
		filter["district"] = bson.M{"$regex": c.District, "$options": "i"}
	}

	if len(c.Rooms) == 1 {
		filter["room_count"] = c.Rooms[0]
	} else if len(c.Rooms) > 1 {
		filter["room_count"] = bson.M{"$in": c.Rooms}
	}

	price := bson.M{}
	if c.MinPrice > 0 {
		price["$gte"] = c.MinPrice
	}
	if c.MaxPrice > 0 {
		price["$lte"] = c.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	area := bson.M{}
	if c.MinArea > 0 {
		area["$gte"] = c.MinArea
	}
	if c.MaxArea > 0 {
		area["$lte"] = c.MaxArea
	}
	if len(area) > 0 {
		filter["space_sm"] = area
	}

	buildYear := bson.M{}
	if c.MinBuildYear > 0 {
		buildYear["$gte"] = c.MinBuildYear
	}
	if c.MaxBuildYear > 0 {
		buildYear["$lte"] = c.MaxBuildYear
	}
	if len(buildYear) > 0 {
		filter["build_year"] = buildYear
	}

	if c.BuildingType != "" {
		filter["building_type"] = c.BuildingType
	}
	if c.BuildingMaterial != "" {
		filter["building_material"] = c.BuildingMaterial
	}
	if c.Heating != "" {
		filter["ogrzewanie"] = c.Heating
	}

	if scope == core.ScopeRent && c.MaxCzynsz > 0 {
		filter["czynsz"] = bson.M{"$lte": c.MaxCzynsz}
	}
	if scope == core.ScopeSale {
		if c.MarketType != "" {
			filter["market_type"] = c.MarketType
		}
		if c.FinishState != "" {
			filter["stan_wykonczenia"] = c.FinishState
		}
	}

	if c.HasGarage != nil {
		filter["has_garage"] = *c.HasGarage
	}
	if c.HasParking != nil {
		filter["has_parking"] = *c.HasParking
	}
	if c.HasBalcony != nil {
		filter["has_balcony"] = *c.HasBalcony
	}
	if c.HasElevator != nil {
		filter["has_elevator"] = *c.HasElevator
	}
	if c.HasAirConditioning != nil {
		filter["has_air_conditioning"] = *c.HasAirConditioning
	}
	if c.PetsAllowed != nil {
		filter["pets_allowed"] = *c.PetsAllowed
	}
	if c.Furnished != nil {
		filter["furnished"] = *c.Furnished
	}

	return filter
}
