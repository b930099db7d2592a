package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/poiesic/lokum/core"
)

func boolPtr(v bool) *bool { return &v }

func TestBuildFilter(t *testing.T) {
	t.Run("nil criteria yields empty filter", func(t *testing.T) {
		assert.Empty(t, buildFilter(core.ScopeRent, nil))
	})

	t.Run("zero criteria yields empty filter", func(t *testing.T) {
		assert.Empty(t, buildFilter(core.ScopeSale, &core.Criteria{}))
	})

	t.Run("city and district match as case-insensitive substrings", func(t *testing.T) {
		filter := buildFilter(core.ScopeRent, &core.Criteria{City: "Warszawa", District: "Mokotów"})
		assert.Equal(t, bson.M{"$regex": "Warszawa", "$options": "i"}, filter["city"])
		assert.Equal(t, bson.M{"$regex": "Mokotów", "$options": "i"}, filter["district"])
	})

	t.Run("single room count is an equality match", func(t *testing.T) {
		filter := buildFilter(core.ScopeRent, &core.Criteria{Rooms: []int{3}})
		assert.Equal(t, 3, filter["room_count"])
	})

	t.Run("multiple room counts use $in", func(t *testing.T) {
		filter := buildFilter(core.ScopeRent, &core.Criteria{Rooms: []int{2, 3}})
		assert.Equal(t, bson.M{"$in": []int{2, 3}}, filter["room_count"])
	})

	t.Run("range bounds are inclusive", func(t *testing.T) {
		filter := buildFilter(core.ScopeSale, &core.Criteria{
			MinPrice:     400000,
			MaxPrice:     800000,
			MinArea:      40,
			MaxArea:      70,
			MinBuildYear: 2000,
			MaxBuildYear: 2020,
		})
		assert.Equal(t, bson.M{"$gte": 400000, "$lte": 800000}, filter["price"])
		assert.Equal(t, bson.M{"$gte": 40.0, "$lte": 70.0}, filter["space_sm"])
		assert.Equal(t, bson.M{"$gte": 2000, "$lte": 2020}, filter["build_year"])
	})

	t.Run("one-sided ranges omit the absent bound", func(t *testing.T) {
		filter := buildFilter(core.ScopeRent, &core.Criteria{MaxPrice: 3500})
		assert.Equal(t, bson.M{"$lte": 3500}, filter["price"])
		assert.NotContains(t, filter, "space_sm")
	})

	t.Run("equality fields", func(t *testing.T) {
		filter := buildFilter(core.ScopeRent, &core.Criteria{
			BuildingType:     "blok",
			BuildingMaterial: "cegla",
			Heating:          "miejskie",
		})
		assert.Equal(t, "blok", filter["building_type"])
		assert.Equal(t, "cegla", filter["building_material"])
		assert.Equal(t, "miejskie", filter["ogrzewanie"])
	})

	t.Run("czynsz bound applies to rent only", func(t *testing.T) {
		criteria := &core.Criteria{MaxCzynsz: 600}
		assert.Equal(t, bson.M{"$lte": 600}, buildFilter(core.ScopeRent, criteria)["czynsz"])
		assert.NotContains(t, buildFilter(core.ScopeSale, criteria), "czynsz")
	})

	t.Run("market type and finish state apply to sale only", func(t *testing.T) {
		criteria := &core.Criteria{MarketType: "pierwotny", FinishState: "do_zamieszkania"}

		saleFilter := buildFilter(core.ScopeSale, criteria)
		assert.Equal(t, "pierwotny", saleFilter["market_type"])
		assert.Equal(t, "do_zamieszkania", saleFilter["stan_wykonczenia"])

		rentFilter := buildFilter(core.ScopeRent, criteria)
		assert.NotContains(t, rentFilter, "market_type")
		assert.NotContains(t, rentFilter, "stan_wykonczenia")
	})

	t.Run("amenity flags constrain only when set", func(t *testing.T) {
		filter := buildFilter(core.ScopeRent, &core.Criteria{
			HasBalcony:  boolPtr(true),
			PetsAllowed: boolPtr(false),
		})
		assert.Equal(t, true, filter["has_balcony"])
		assert.Equal(t, false, filter["pets_allowed"])
		assert.NotContains(t, filter, "has_garage")
		assert.NotContains(t, filter, "has_parking")
		assert.NotContains(t, filter, "has_elevator")
		assert.NotContains(t, filter, "has_air_conditioning")
		assert.NotContains(t, filter, "furnished")
	})

	t.Run("constraint set does not depend on assembly order", func(t *testing.T) {
		a := buildFilter(core.ScopeSale, &core.Criteria{
			City:       "Kraków",
			Rooms:      []int{2},
			MaxPrice:   900000,
			MarketType: "wtorny",
		})
		b := buildFilter(core.ScopeSale, &core.Criteria{
			MarketType: "wtorny",
			MaxPrice:   900000,
			Rooms:      []int{2},
			City:       "Kraków",
		})
		assert.Equal(t, a, b)
	})
}

func TestNormalizeDecoded(t *testing.T) {
	t.Run("tags scope and clears the foreign variant", func(t *testing.T) {
		l := &core.Listing{Id: "a", Rent: &core.RentDetails{}, Sale: &core.SaleDetails{MarketType: "wtorny"}}
		normalizeDecoded(l, core.ScopeSale)

		require.Equal(t, core.ScopeSale, l.Scope)
		assert.Nil(t, l.Rent)
		require.NotNil(t, l.Sale)
		assert.Equal(t, "wtorny", l.Sale.MarketType)
	})

	t.Run("clears an empty inline-decoded variant", func(t *testing.T) {
		l := &core.Listing{Id: "b", Rent: &core.RentDetails{}}
		normalizeDecoded(l, core.ScopeRent)

		assert.Equal(t, core.ScopeRent, l.Scope)
		assert.Nil(t, l.Rent)
	})
}
