package store

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/vendia/entity"
	"github.com/jacentio/vendia/internal/shard"
)

// PK represents a DynamoDB primary key or item.
type PK map[string]types.AttributeValue

// record is the exported item shape of an entity.
type record struct {
	// ID is the entity identifier (the item key).
	ID int32 `dynamodbav:"id"`

	// PartitionKey is the sharded partition key (e.g., "product#0a").
	PartitionKey string `dynamodbav:"pk"`

	// EntityType is the entity type name (e.g., "product").
	EntityType string `dynamodbav:"entity_type"`

	// EntityRef is the type-qualified reference (e.g., "product#3").
	EntityRef string `dynamodbav:"entity_ref"`

	// ParentRef is the parent's entity reference (empty for roots and non-entity parents).
	ParentRef string `dynamodbav:"parent_ref,omitempty"`

	Depth int `dynamodbav:"depth"`
	Index int `dynamodbav:"index"`

	// Children lists the identifiers of child entities in sibling order.
	Children []int32 `dynamodbav:"children,omitempty"`
}

// ItemKey returns the item key for id.
func ItemKey(id entity.ID) PK {
	return PK{"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(int64(id), 10)}}
}

// KeyID extracts the entity identifier from an item or key.
func KeyID(key PK) (entity.ID, error) {
	var k struct {
		ID *int32 `dynamodbav:"id"`
	}
	if err := attributevalue.UnmarshalMap(key, &k); err != nil {
		return entity.NullID, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	if k.ID == nil {
		return entity.NullID, fmt.Errorf("%w: missing id", ErrMalformedKey)
	}
	return entity.ID(*k.ID), nil
}

// Item encodes e as a DynamoDB item, including its position in the tree.
func (s *Store) Item(e entity.Entity) (PK, error) {
	if entity.IsNull(e) {
		return nil, ErrNullEntity
	}
	ref := entity.Key(e)
	node := e.TreeNode()
	rec := record{
		ID:           e.ID().Int32(),
		PartitionKey: shard.PartitionKey(e.EntityType(), ref, s.config.NumShards),
		EntityType:   e.EntityType(),
		EntityRef:    ref,
		Depth:        node.Depth(),
		Index:        node.Index(),
	}
	if p, ok := node.Parent().(entity.Entity); ok {
		rec.ParentRef = entity.Key(p)
	}
	for c := range node.All() {
		if ce, ok := c.(entity.Entity); ok && !ce.IsNull() {
			rec.Children = append(rec.Children, ce.ID().Int32())
		}
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", ref, err)
	}
	return item, nil
}

// WriteRequests encodes every stored entity as a put request, keyed by the
// configured table name, in identifier order.
func (s *Store) WriteRequests() (map[string][]types.WriteRequest, error) {
	ids := s.IDs()
	requests := make([]types.WriteRequest, 0, len(ids))
	for _, id := range ids {
		e, ok := s.Fetch(id)
		if !ok {
			continue // removed concurrently
		}
		item, err := s.Item(e)
		if err != nil {
			return nil, err
		}
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}
	return map[string][]types.WriteRequest{s.config.TableName: requests}, nil
}
