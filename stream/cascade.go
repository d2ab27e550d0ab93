// Package stream provides DynamoDB Streams handlers that keep an identity map
// in step with deletions made elsewhere.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jacentio/vendia/entity"
	"github.com/jacentio/vendia/store"
	"github.com/jacentio/vendia/tree"
)

// ErrNoStore is returned when a handler without a store receives a deletion.
var ErrNoStore = errors.New("vendia: stream handler has no store")

const tracerName = "github.com/jacentio/vendia/stream"

// Handler evicts deleted entities, and everything below them in the tree,
// from a store.
type Handler struct {
	store  *store.Store
	logger *slog.Logger
	tracer trace.Tracer
}

// Option configures a Handler.
type Option func(*Handler)

// WithTracerProvider traces each batch of records with tp.
// Default: no-op.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Handler) {
		if tp != nil {
			h.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewHandler creates a new stream handler.
func NewHandler(s *store.Store, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		store:  s,
		logger: logger,
		tracer: noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleCascadeEvict processes DynamoDB stream events. REMOVE records, and
// MODIFY records that newly set a ttl, evict the keyed entity and its subtree.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleCascadeEvict(ctx context.Context, event events.DynamoDBEvent) error {
	ctx, span := h.tracer.Start(ctx, "stream.HandleCascadeEvict",
		trace.WithAttributes(attribute.Int("vendia.records", len(event.Records))),
	)
	defer span.End()

	for _, record := range event.Records {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	return nil
}

// processRecord processes a single DynamoDB stream record.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	switch record.EventName {
	case "REMOVE":
	case "MODIFY":
		// Only process when TTL is newly set (was absent/0, now present)
		oldImage := ConvertStreamKey(record.Change.OldImage)
		newImage := ConvertStreamKey(record.Change.NewImage)
		if store.IsMarkedForDeletion(oldImage) || !store.IsMarkedForDeletion(newImage) {
			return nil
		}
	default:
		return nil
	}

	if h.store == nil {
		return ErrNoStore
	}

	id, err := store.KeyID(ConvertStreamKey(record.Change.Keys))
	if err != nil {
		return fmt.Errorf("record key: %w", err)
	}

	removed := h.Evict(id)
	trace.SpanFromContext(ctx).AddEvent("evict", trace.WithAttributes(
		attribute.String("vendia.event_name", record.EventName),
		attribute.Int("vendia.id", int(id)),
		attribute.Int("vendia.removed", removed),
	))
	h.logger.Info("cascade evict completed",
		"eventName", record.EventName,
		"id", id.String(),
		"removed", removed,
	)
	return nil
}

// Evict removes the entity stored under id together with every entity in its
// subtree, and detaches it from its parent. It returns the number of entities
// removed from the store; unknown identifiers remove nothing.
func (h *Handler) Evict(id entity.ID) int {
	if h.store == nil {
		return 0
	}
	e, ok := h.store.Fetch(id)
	if !ok {
		h.logger.Debug("entity not cached", "id", id.String())
		return 0
	}

	node := e.TreeNode()
	victims := append([]tree.Noder{e}, node.Descendants()...)
	if parent := node.Parent(); parent != nil {
		parent.TreeNode().RemoveChild(e)
	}

	removed := 0
	for _, v := range victims {
		ve, ok := v.(entity.Entity)
		if !ok {
			continue
		}
		if h.store.RemoveEntity(ve) {
			removed++
		} else {
			h.logger.Warn("descendant not cached", "entityRef", entity.Key(ve))
		}
	}
	return removed
}

// ConvertStreamKey converts a DynamoDB stream key or image to a store.PK.
func ConvertStreamKey(streamKey map[string]events.DynamoDBAttributeValue) store.PK {
	result := make(store.PK)
	for k, v := range streamKey {
		switch v.DataType() {
		case events.DataTypeString:
			result[k] = &types.AttributeValueMemberS{Value: v.String()}
		case events.DataTypeNumber:
			result[k] = &types.AttributeValueMemberN{Value: v.Number()}
		case events.DataTypeBinary:
			result[k] = &types.AttributeValueMemberB{Value: v.Binary()}
		}
	}
	return result
}
