package keys

import (
	"strings"
)

const (
	// PfxAuctionStore prefixes persisted auction projection snapshots
	PfxAuctionStore = "auctionStore"
	// PfxTokenStore prefixes persisted token projection snapshots
	PfxTokenStore = "tokenStore"
)

// CustomKey joins key components with the given delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey joins key components with ":"
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}
