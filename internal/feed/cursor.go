// Package feed implements the livery feed query engine: candidate
// resolution, in-memory filtering and sorting, cursor pagination, and
// result enrichment.
package feed

import "strconv"

// Cursors are string-encoded integer offsets into the filtered, sorted
// result set. They are opaque to clients but deliberately simple: the feed
// gives no snapshot isolation across pages, so a fancier cursor would not
// buy stability anyway.

// DecodeCursor parses a cursor into an offset. Absent or malformed cursors
// mean the first page.
func DecodeCursor(cursor string) int {
	if cursor == "" {
		return 0
	}
	offset, err := strconv.Atoi(cursor)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// EncodeCursor renders an offset as a cursor string.
func EncodeCursor(offset int) string {
	return strconv.Itoa(offset)
}
