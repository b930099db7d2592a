package core

import "fmt"

// Criteria is a sparse set of structured filter constraints. A nil/zero field
// imposes no constraint; set fields combine with logical AND. Text fields
// (City, District) match case-insensitively as substrings.
type Criteria struct {
	City     string
	District string

	// Rooms matches any of the given room counts. A single-element slice is
	// an exact match.
	Rooms []int

	MinPrice int
	MaxPrice int

	MinArea float64
	MaxArea float64

	MinBuildYear int
	MaxBuildYear int

	BuildingType     string
	BuildingMaterial string
	Heating          string

	// MaxCzynsz bounds the monthly rent surcharge. Rent listings only.
	MaxCzynsz int

	// MarketType and FinishState apply to sale listings only.
	MarketType  string
	FinishState string

	HasGarage          *bool
	HasParking         *bool
	HasBalcony         *bool
	HasElevator        *bool
	HasAirConditioning *bool
	PetsAllowed        *bool
	Furnished          *bool
}

// Sanitize drops malformed constraints in place and returns one diagnostic
// per dropped constraint. A malformed value never fails a search; the rest of
// the criteria still applies.
func (c *Criteria) Sanitize() []string {
	if c == nil {
		return nil
	}
	var dropped []string

	drop := func(field string, reason string) {
		dropped = append(dropped, fmt.Sprintf("%s: %s", field, reason))
	}

	if c.MinPrice < 0 {
		drop("min_price", "negative")
		c.MinPrice = 0
	}
	if c.MaxPrice < 0 {
		drop("max_price", "negative")
		c.MaxPrice = 0
	}
	if c.MinPrice > 0 && c.MaxPrice > 0 && c.MinPrice > c.MaxPrice {
		drop("min_price", fmt.Sprintf("inverted range %d > %d", c.MinPrice, c.MaxPrice))
		c.MinPrice = 0
	}

	if c.MinArea < 0 {
		drop("min_area", "negative")
		c.MinArea = 0
	}
	if c.MaxArea < 0 {
		drop("max_area", "negative")
		c.MaxArea = 0
	}
	if c.MinArea > 0 && c.MaxArea > 0 && c.MinArea > c.MaxArea {
		drop("min_area", fmt.Sprintf("inverted range %g > %g", c.MinArea, c.MaxArea))
		c.MinArea = 0
	}

	if c.MinBuildYear < 0 {
		drop("min_build_year", "negative")
		c.MinBuildYear = 0
	}
	if c.MaxBuildYear < 0 {
		drop("max_build_year", "negative")
		c.MaxBuildYear = 0
	}
	if c.MinBuildYear > 0 && c.MaxBuildYear > 0 && c.MinBuildYear > c.MaxBuildYear {
		drop("min_build_year", fmt.Sprintf("inverted range %d > %d", c.MinBuildYear, c.MaxBuildYear))
		c.MinBuildYear = 0
	}

	if c.MaxCzynsz < 0 {
		drop("max_czynsz", "negative")
		c.MaxCzynsz = 0
	}

	if len(c.Rooms) > 0 {
		valid := c.Rooms[:0]
		for _, r := range c.Rooms {
			if r <= 0 {
				drop("rooms", fmt.Sprintf("non-positive room count %d", r))
				continue
			}
			valid = append(valid, r)
		}
		c.Rooms = valid
	}

	return dropped
}

// IsZero reports whether the criteria imposes no constraint at all.
func (c *Criteria) IsZero() bool {
	if c == nil {
		return true
	}
	return c.City == "" && c.District == "" && len(c.Rooms) == 0 &&
		c.MinPrice == 0 && c.MaxPrice == 0 &&
		c.MinArea == 0 && c.MaxArea == 0 &&
		c.MinBuildYear == 0 && c.MaxBuildYear == 0 &&
		c.BuildingType == "" && c.BuildingMaterial == "" && c.Heating == "" &&
		c.MaxCzynsz == 0 && c.MarketType == "" && c.FinishState == "" &&
		c.HasGarage == nil && c.HasParking == nil && c.HasBalcony == nil &&
		c.HasElevator == nil && c.HasAirConditioning == nil &&
		c.PetsAllowed == nil && c.Furnished == nil
}
