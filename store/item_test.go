package store_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/vendia/entity"
	"github.com/jacentio/vendia/store"
	"github.com/jacentio/vendia/tree"
)

type exportedItem struct {
	ID         int32   `dynamodbav:"id"`
	PK         string  `dynamodbav:"pk"`
	EntityType string  `dynamodbav:"entity_type"`
	EntityRef  string  `dynamodbav:"entity_ref"`
	ParentRef  string  `dynamodbav:"parent_ref"`
	Depth      int     `dynamodbav:"depth"`
	Index      int     `dynamodbav:"index"`
	Children   []int32 `dynamodbav:"children"`
}

func decodeItem(t *testing.T, item store.PK) exportedItem {
	t.Helper()
	var out exportedItem
	require.NoError(t, attributevalue.UnmarshalMap(item, &out))
	return out
}

func TestStore_Item(t *testing.T) {
	s := store.New(store.DefaultConfig(), nil)
	root, mid := newGadget(1, "root"), newGadget(2, "mid")
	first, second := newGadget(3, "first"), newGadget(4, "second")
	root.AddChild(mid)
	mid.AddChild(first)
	mid.AddChild(tree.New())
	mid.AddChild(second)

	item, err := s.Item(mid)
	require.NoError(t, err)

	got := decodeItem(t, item)
	assert.Equal(t, int32(2), got.ID)
	assert.Equal(t, "gadget#00", got.PK)
	assert.Equal(t, "gadget", got.EntityType)
	assert.Equal(t, "gadget#2", got.EntityRef)
	assert.Equal(t, "gadget#1", got.ParentRef)
	assert.Equal(t, 1, got.Depth)
	assert.Equal(t, 0, got.Index)
	assert.Equal(t, []int32{3, 4}, got.Children, "plain nodes are not exported")
}

func TestStore_Item_Root(t *testing.T) {
	s := store.New(store.DefaultConfig(), nil)

	item, err := s.Item(newGadget(9, "alone"))
	require.NoError(t, err)

	assert.NotContains(t, item, "parent_ref")
	assert.NotContains(t, item, "children")
	got := decodeItem(t, item)
	assert.Equal(t, 0, got.Depth)
}

func TestStore_Item_ShardedPartitionKey(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.NumShards = 16
	s := store.New(cfg, nil)

	item, err := s.Item(newGadget(9, "g"))
	require.NoError(t, err)

	got := decodeItem(t, item)
	assert.Regexp(t, `^gadget#[0-9a-f]{2}$`, got.PK)
}

func TestStore_Item_Null(t *testing.T) {
	s := store.New(store.DefaultConfig(), nil)

	_, err := s.Item(nullGadget)
	assert.ErrorIs(t, err, store.ErrNullEntity)

	_, err = s.Item(nil)
	assert.ErrorIs(t, err, store.ErrNullEntity)
}

func TestKeyID(t *testing.T) {
	for _, id := range []entity.ID{0, 42, entity.NullID} {
		got, err := store.KeyID(store.ItemKey(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	tests := []struct {
		name string
		key  store.PK
	}{
		{name: "missing id", key: store.PK{"pk": &types.AttributeValueMemberS{Value: "gadget#00"}}},
		{name: "not a number", key: store.PK{"id": &types.AttributeValueMemberN{Value: "abc"}}},
		{name: "string id", key: store.PK{"id": &types.AttributeValueMemberS{Value: "7"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := store.KeyID(tt.key)
			assert.ErrorIs(t, err, store.ErrMalformedKey)
			assert.Equal(t, entity.NullID, id)
		})
	}
}

func TestStore_WriteRequests(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.TableName = "catalog"
	cfg.NumShards = 4
	s := store.New(cfg, nil)
	for _, id := range []entity.ID{3, 1, 2} {
		s.Add(newGadget(id, "g"))
	}

	requests, err := s.WriteRequests()
	require.NoError(t, err)
	require.Contains(t, requests, "catalog")
	require.Len(t, requests["catalog"], 3)

	var ids []entity.ID
	for _, req := range requests["catalog"] {
		require.NotNil(t, req.PutRequest)
		id, err := store.KeyID(req.PutRequest.Item)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []entity.ID{1, 2, 3}, ids)
}

func TestStore_WriteRequests_Empty(t *testing.T) {
	s := store.New(store.DefaultConfig(), nil)

	requests, err := s.WriteRequests()
	require.NoError(t, err)
	assert.Empty(t, requests["vendia_entities"])
}
