// Package shard provides the bucket hashing used to partition the identity map
// and to derive partition keys for exported items.
package shard

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// Index returns the bucket for key among numShards buckets.
// With numShards<=1, every key maps to bucket 0.
func Index(key int32, numShards int) int {
	if numShards <= 1 {
		return 0
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(key))
	h := fnv.New32a()
	h.Write(buf[:])
	return int(h.Sum32() % uint32(numShards))
}

// PartitionKey computes a sharded partition key of the form "prefix#xx".
// With numShards=1, all keys go to shard "00".
// With numShards>1, keys are distributed across shards based on the key hash.
func PartitionKey(prefix, key string, numShards int) string {
	if numShards <= 1 {
		return fmt.Sprintf("%s#00", prefix)
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	shard := h.Sum32() % uint32(numShards)
	return fmt.Sprintf("%s#%02x", prefix, shard)
}
