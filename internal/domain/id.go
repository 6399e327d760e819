package domain

import (
	"math/rand"
	"strconv"
	"time"
)

// NewRecordID generates an opaque record identifier: the current unix
// millisecond timestamp in base36 plus a short random base36 suffix to keep
// identifiers created in the same millisecond distinct.
func NewRecordID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) +
		strconv.FormatUint(rand.Uint64(), 36)
}
