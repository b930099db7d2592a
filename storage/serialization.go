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


package storage

import (
	"github.com/poiesic/lokum/core"
)

// MarshalListingVector serializes a ListingVector to bytes.
func MarshalListingVector(vec *core.ListingVector) []byte {
	buf := make([]byte, core.ListingVectorMUS.Size(*vec))
	core.ListingVectorMUS.Marshal(*vec, buf)
	return buf
}

// UnmarshalListingVector deserializes a ListingVector from bytes.
func UnmarshalListingVector(data []byte) (*core.ListingVector, error) {
	vec, _, err := core.ListingVectorMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &vec, nil
}

// MarshalScope serializes a Scope to bytes.
func MarshalScope(s core.Scope) []byte {
	buf := make([]byte, core.ScopeMUS.Size(s))
	core.ScopeMUS.Marshal(s, buf)
	return buf
}

// UnmarshalScope deserializes a Scope from bytes.
func UnmarshalScope(data []byte) (core.Scope, error) {
	s, _, err := core.ScopeMUS.Unmarshal(data)
	return s, err
}
