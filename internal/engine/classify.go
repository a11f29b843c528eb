package engine

import (
	"strings"

	"volumeScope/internal/model"
)

// IsRouterInteraction reports whether the record's to or from address,
// case-insensitively, matches any configured router address. Pure and total.
func IsRouterInteraction(tx model.TransactionRecord, routers map[string]struct{}) bool {
	if len(routers) == 0 {
		return false
	}
	if _, ok := routers[strings.ToLower(tx.To)]; ok {
		return true
	}
	_, ok := routers[strings.ToLower(tx.From)]
	return ok
}
