//go:build e2e

// Package e2e contains end-to-end tests that drive a catalog through the
// factory, export it as DynamoDB items and feed stream events back.
// Run with: go test -tags=e2e -v ./e2e/...
package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/jacentio/vendia/catalog"
	"github.com/jacentio/vendia/entity"
	"github.com/jacentio/vendia/store"
	"github.com/jacentio/vendia/stream"
)

const tablePrefix = "vendia-e2e-test"

var (
	testID    string
	tableName string
	logger    *slog.Logger
)

func TestMain(m *testing.M) {
	// Generate unique test ID
	testID = uuid.New().String()[:8]
	tableName = fmt.Sprintf("%s-%s-entities", tablePrefix, testID)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fmt.Printf("Test ID: %s\n", testID)
	fmt.Printf("Table: %s\n", tableName)

	os.Exit(m.Run())
}

// newFactory returns a factory over a fresh sharded store.
func newFactory(t *testing.T) *store.Factory {
	t.Helper()
	reg := store.NewRegistry()
	if err := catalog.Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	s := store.New(store.Config{TableName: tableName, NumShards: 8}, logger)
	return store.NewFactory(s, reg, logger)
}

func streamKey(id entity.ID) map[string]events.DynamoDBAttributeValue {
	return map[string]events.DynamoDBAttributeValue{
		"id": events.NewNumberAttribute(strconv.FormatInt(int64(id), 10)),
	}
}

// --- Hierarchy Tests ---

func TestDeepHierarchy_ThreeLevels(t *testing.T) {
	f := newFactory(t)

	// product -> listing -> listing
	product := catalog.CreateProduct(f, func(b *catalog.ProductBuilder) {
		b.WithName("Deep Product")
	}).Value()
	listing := catalog.CreateListing(f, func(b *catalog.ListingBuilder) {
		b.WithName("Deep Listing").WithOption("bag", 250, catalog.Grams)
	}).Value()
	bundle := catalog.CreateListing(f, func(b *catalog.ListingBuilder) {
		b.WithName("Deep Bundle").WithOption("pack", 6, catalog.Units)
	}).Value()

	if !product.AddChild(listing) || !listing.AddChild(bundle) {
		t.Fatal("AddChild failed")
	}

	if bundle.Depth() != 2 {
		t.Errorf("expected bundle depth 2, got %d", bundle.Depth())
	}
	ascendants := bundle.Ascendants()
	if len(ascendants) != 2 || ascendants[1] != product {
		t.Errorf("expected ascendants [listing product], got %v", ascendants)
	}
	if n := len(product.Descendants()); n != 2 {
		t.Errorf("expected product to have 2 descendants, got %d", n)
	}
	if product.AddChild(product) || bundle.AddChild(product) {
		t.Error("expected cycles to be rejected")
	}
}

func TestReferences_ResolveThroughStore(t *testing.T) {
	f := newFactory(t)

	product := catalog.CreateProduct(f, func(b *catalog.ProductBuilder) {
		b.WithName("Referenced")
	})
	listing := catalog.CreateListing(f, func(b *catalog.ListingBuilder) {
		b.WithProduct(store.NewRef[*catalog.Product](f.Store(), product.ID()))
	}).Value()

	if got := listing.Product.GetOrFetch(); got != product.Value() {
		t.Errorf("expected listing to resolve its product, got %v", got)
	}

	fresh := store.NewRef[*catalog.Product](f.Store(), product.ID())
	f.Store().Remove(product.ID())
	if _, ok := fresh.TryFetch(); ok {
		t.Error("expected removed product to be unresolvable")
	}
	if listing.Product.GetOrFetch() != product.Value() {
		t.Error("expected cached product to survive removal")
	}
}

// --- Export Tests ---

func TestWriteRequests_ExportWholeStore(t *testing.T) {
	f := newFactory(t)
	product := catalog.CreateProduct(f, nil).Value()
	for i := 0; i < 5; i++ {
		product.AddChild(catalog.CreateListing(f, nil).Value())
	}

	requests, err := f.Store().WriteRequests()
	if err != nil {
		t.Fatalf("WriteRequests failed: %v", err)
	}
	puts := requests[tableName]
	if len(puts) != 6 {
		t.Fatalf("expected 6 put requests, got %d", len(puts))
	}
	for i, req := range puts {
		id, err := store.KeyID(req.PutRequest.Item)
		if err != nil {
			t.Fatalf("KeyID failed: %v", err)
		}
		if id != entity.ID(i) {
			t.Errorf("expected request %d to carry id %d, got %s", i, i, id)
		}
	}
}

// --- Stream Tests ---

func TestStream_RemoveEvictsSubtree(t *testing.T) {
	ctx := context.Background()
	f := newFactory(t)

	product := catalog.CreateProduct(f, nil).Value()
	listing := catalog.CreateListing(f, nil).Value()
	bundle := catalog.CreateListing(f, nil).Value()
	product.AddChild(listing)
	listing.AddChild(bundle)

	h := stream.NewHandler(f.Store(), logger)
	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{{
		EventID:   "remove-listing",
		EventName: "REMOVE",
		Change: events.DynamoDBStreamRecord{
			Keys:     streamKey(listing.ID()),
			OldImage: streamKey(listing.ID()),
		},
	}}}
	if err := h.HandleCascadeEvict(ctx, event); err != nil {
		t.Fatalf("HandleCascadeEvict failed: %v", err)
	}

	if f.Store().Contains(listing.ID()) || f.Store().Contains(bundle.ID()) {
		t.Error("expected listing subtree to be evicted")
	}
	if !f.Store().Contains(product.ID()) {
		t.Error("expected product to stay cached")
	}
	if product.HasChildren() {
		t.Error("expected listing to be detached from product")
	}
}

func TestStream_TTLMarksForEviction(t *testing.T) {
	ctx := context.Background()
	f := newFactory(t)
	product := catalog.CreateProduct(f, nil).Value()

	oldImage := streamKey(product.ID())
	newImage := streamKey(product.ID())
	newImage["ttl"] = events.NewNumberAttribute("1000000000")

	h := stream.NewHandler(f.Store(), logger)
	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{{
		EventID:   "expire-product",
		EventName: "MODIFY",
		Change: events.DynamoDBStreamRecord{
			Keys:     streamKey(product.ID()),
			OldImage: oldImage,
			NewImage: newImage,
		},
	}}}
	if err := h.HandleCascadeEvict(ctx, event); err != nil {
		t.Fatalf("HandleCascadeEvict failed: %v", err)
	}
	if f.Store().Count() != 0 {
		t.Errorf("expected empty store, got %d entities", f.Store().Count())
	}

	// identifiers are not reused after eviction
	next := catalog.CreateProduct(f, nil)
	if next.ID() == product.ID() {
		t.Errorf("expected a fresh id, got %s again", next.ID())
	}
}
