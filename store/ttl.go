package store

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TTL returns the ttl attribute of an item, or 0 when absent or malformed.
func TTL(item PK) int64 {
	ttlAttr, exists := item["ttl"]
	if !exists {
		return 0
	}
	ttlNum, ok := ttlAttr.(*types.AttributeValueMemberN)
	if !ok {
		return 0
	}
	ttl, err := strconv.ParseInt(ttlNum.Value, 10, 64)
	if err != nil {
		return 0
	}
	return ttl
}

// IsMarkedForDeletion reports whether an item carries a ttl, the marker
// set on records scheduled for deletion.
func IsMarkedForDeletion(item PK) bool {
	return TTL(item) > 0
}
