package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateListing(t *testing.T) {
	valid := func() *Listing {
		return &Listing{
			Id:    "ID4xqpn",
			Scope: ScopeRent,
			Title: "Mieszkanie 3-pokojowe",
		}
	}

	t.Run("valid rent listing", func(t *testing.T) {
		require.NoError(t, ValidateListing(valid()))
	})

	t.Run("valid sale listing with details", func(t *testing.T) {
		l := valid()
		l.Scope = ScopeSale
		l.Sale = &SaleDetails{MarketType: "secondary"}
		require.NoError(t, ValidateListing(l))
	})

	t.Run("nil listing", func(t *testing.T) {
		err := ValidateListing(nil)
		assert.ErrorIs(t, err, ErrInvalidListing)
	})

	t.Run("missing id", func(t *testing.T) {
		l := valid()
		l.Id = ""
		err := ValidateListing(l)
		assert.ErrorIs(t, err, ErrMissingID)
	})

	t.Run("both scope rejected on a record", func(t *testing.T) {
		l := valid()
		l.Scope = ScopeBoth
		err := ValidateListing(l)
		assert.ErrorIs(t, err, ErrInvalidScope)
	})

	t.Run("sale details on rent listing", func(t *testing.T) {
		l := valid()
		l.Sale = &SaleDetails{MarketType: "primary"}
		err := ValidateListing(l)
		assert.ErrorIs(t, err, ErrScopeMismatch)
	})

	t.Run("rent details on sale listing", func(t *testing.T) {
		l := valid()
		l.Scope = ScopeSale
		l.Rent = &RentDetails{Czynsz: 490}
		err := ValidateListing(l)
		assert.ErrorIs(t, err, ErrScopeMismatch)
	})
}

func TestQueryScopes(t *testing.T) {
	assert.Equal(t, []Scope{ScopeRent}, QueryScopes(ScopeRent))
	assert.Equal(t, []Scope{ScopeSale}, QueryScopes(ScopeSale))
	assert.Equal(t, []Scope{ScopeRent, ScopeSale}, QueryScopes(ScopeBoth))
	assert.Nil(t, QueryScopes(Scope("lease")))
}

func TestHasTextContent(t *testing.T) {
	assert.False(t, (&Listing{Id: "x", Scope: ScopeRent}).HasTextContent())
	assert.True(t, (&Listing{Id: "x", Scope: ScopeRent, Title: "t"}).HasTextContent())
	assert.True(t, (&Listing{Id: "x", Scope: ScopeRent, Description: "d"}).HasTextContent())
	assert.True(t, (&Listing{Id: "x", Scope: ScopeRent, FeaturesByCategory: "f"}).HasTextContent())
}
