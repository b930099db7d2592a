package badger

import "fmt"

// Key prefixes for different data types
const (
	listingVectorPrefix = "lisvec"
)

// makeListingVectorKey generates a key for a listing vector by id.
func makeListingVectorKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", listingVectorPrefix, id))
}

// listingVectorKeyPrefix returns the scan prefix for all listing vectors.
func listingVectorKeyPrefix() []byte {
	return []byte(listingVectorPrefix + ":")
}
