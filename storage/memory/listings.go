// Package memory provides an in-memory storage.ListingRepository used in
// tests and local experiments. Matching semantics mirror the MongoDB backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/poiesic/lokum/core"
	"github.com/poiesic/lokum/storage"
)

// ListingRepository stores listings in process memory, keyed by scope and id.
type ListingRepository struct {
	mu       sync.RWMutex
	listings map[core.Scope]map[string]*core.Listing
}

var _ storage.ListingRepository = (*ListingRepository)(nil)

// NewListingRepository creates an empty repository.
func NewListingRepository() *ListingRepository {
	return &ListingRepository{
		listings: map[core.Scope]map[string]*core.Listing{
			core.ScopeRent: {},
			core.ScopeSale: {},
		},
	}
}

func (r *ListingRepository) FindListings(ctx context.Context, scope core.Scope, criteria *core.Criteria, limit int) ([]*core.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID, err := r.scopeMap(scope)
	if err != nil {
		return nil, err
	}

	// Deterministic iteration keeps test output stable.
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var results []*core.Listing
	for _, id := range ids {
		l := byID[id]
		if !matches(l, scope, criteria) {
			continue
		}
		results = append(results, l)
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

func (r *ListingRepository) GetListing(ctx context.Context, scope core.Scope, id string) (*core.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID, err := r.scopeMap(scope)
	if err != nil {
		return nil, err
	}
	l, ok := byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return l, nil
}

func (r *ListingRepository) UpsertListing(ctx context.Context, listing *core.Listing) error {
	if listing != nil && listing.Id == "" {
		listing.Id = core.IDFromLink(listing.Link)
	}
	if err := core.ValidateListing(listing); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	byID, err := r.scopeMap(listing.Scope)
	if err != nil {
		return err
	}
	byID[listing.Id] = listing
	return nil
}

func (r *ListingRepository) ForEachListing(ctx context.Context, scope core.Scope, limit int, fn func(*core.Listing) error) error {
	r.mu.RLock()
	byID, err := r.scopeMap(scope)
	if err != nil {
		r.mu.RUnlock()
		return err
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	snapshot := make([]*core.Listing, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, byID[id])
	}
	r.mu.RUnlock()

	for i, l := range snapshot {
		if limit > 0 && i >= limit {
			return nil
		}
		if err := fn(l); err != nil {
			return err
		}
	}
	return nil
}

func (r *ListingRepository) Close(ctx context.Context) error {
	return nil
}

func (r *ListingRepository) scopeMap(scope core.Scope) (map[string]*core.Listing, error) {
	byID, ok := r.listings[scope]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", storage.ErrInvalidQuery, core.ErrInvalidScope, scope)
	}
	return byID, nil
}

func matches(l *core.Listing, scope core.Scope, c *core.Criteria) bool {
	if c == nil {
		return true
	}

	if c.City != "" && !containsFold(l.City, c.City) {
		return false
	}
	if c.District != "" && !containsFold(l.District, c.District) {
		return false
	}

	if len(c.Rooms) > 0 {
		found := false
		for _, r := range c.Rooms {
			if l.RoomCount == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.MinPrice > 0 && l.Price < c.MinPrice {
		return false
	}
	if c.MaxPrice > 0 && l.Price > c.MaxPrice {
		return false
	}
	if c.MinArea > 0 && l.SpaceSM < c.MinArea {
		return false
	}
	if c.MaxArea > 0 && l.SpaceSM > c.MaxArea {
		return false
	}
	if c.MinBuildYear > 0 && l.BuildYear < c.MinBuildYear {
		return false
	}
	if c.MaxBuildYear > 0 && l.BuildYear > c.MaxBuildYear {
		return false
	}

	if c.BuildingType != "" && l.BuildingType != c.BuildingType {
		return false
	}
	if c.BuildingMaterial != "" && l.BuildingMaterial != c.BuildingMaterial {
		return false
	}
	if c.Heating != "" && l.Heating != c.Heating {
		return false
	}

	if scope == core.ScopeRent && c.MaxCzynsz > 0 {
		if l.Rent == nil || l.Rent.Czynsz > c.MaxCzynsz {
			return false
		}
	}
	if scope == core.ScopeSale {
		if c.MarketType != "" && (l.Sale == nil || l.Sale.MarketType != c.MarketType) {
			return false
		}
		if c.FinishState != "" && (l.Sale == nil || l.Sale.FinishState != c.FinishState) {
			return false
		}
	}

	if !matchFlag(l.HasGarage, c.HasGarage) {
		return false
	}
	if !matchFlag(l.HasParking, c.HasParking) {
		return false
	}
	if !matchFlag(l.HasBalcony, c.HasBalcony) {
		return false
	}
	if !matchFlag(l.HasElevator, c.HasElevator) {
		return false
	}
	if !matchFlag(l.HasAirConditioning, c.HasAirConditioning) {
		return false
	}
	if !matchFlag(l.PetsAllowed, c.PetsAllowed) {
		return false
	}
	if !matchFlag(l.Furnished, c.Furnished) {
		return false
	}

	return true
}

func matchFlag(have, want *bool) bool {
	if want == nil {
		return true
	}
	return have != nil && *have == *want
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
