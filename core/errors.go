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

import "errors"

// Domain validation errors
var (
	// ErrInvalidListing indicates a Listing failed validation.
	ErrInvalidListing = errors.New("invalid listing")

	// ErrMissingID indicates a Listing has no id and no link to derive one from.
	ErrMissingID = errors.New("listing id is required")

	// ErrInvalidScope indicates a scope value that is neither rent nor sale.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrScopeMismatch indicates scope-specific fields set on the wrong scope.
	ErrScopeMismatch = errors.New("scope-specific fields set on wrong scope")
)
