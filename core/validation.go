// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateListing validates a Listing according to domain rules.
//
// Validation rules:
//   - Id must not be empty (callers may derive one with IDFromLink first)
//   - Scope must be rent or sale (never both)
//   - Rent details may only be set on rent listings, Sale details on sale listings
//
// NOT validated:
//   - Text fields (a listing without text is valid, it just never gets embedded)
//   - Numeric attributes (0 means unknown for price, rooms, area, year)
func ValidateListing(l *Listing) error {
	if l == nil {
		return fmt.Errorf("%w: listing is nil", ErrInvalidListing)
	}

	if l.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidListing, ErrMissingID)
	}

	if l.Scope != ScopeRent && l.Scope != ScopeSale {
		return fmt.Errorf("%w: %w: %q", ErrInvalidListing, ErrInvalidScope, l.Scope)
	}

	if l.Scope == ScopeRent && l.Sale != nil {
		return fmt.Errorf("%w: %w: sale details on rent listing", ErrInvalidListing, ErrScopeMismatch)
	}
	if l.Scope == ScopeSale && l.Rent != nil {
		return fmt.Errorf("%w: %w: rent details on sale listing", ErrInvalidListing, ErrScopeMismatch)
	}

	return nil
}
