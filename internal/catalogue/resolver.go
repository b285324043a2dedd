// Package catalogue resolves external catalogue keys into fully enriched
// objects.
package catalogue

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mesh-intelligence/archief/pkg/types"
)

var tracer = otel.Tracer("archief/catalogue")

// Reader opens consistent read-only snapshots of the catalogue.
type Reader interface {
	Read(ctx context.Context, fn func(types.Registry) error) error
}

// Resolver turns catalogue keys into ResolvedObjects. It holds no per-request
// state and is safe for concurrent use.
type Resolver struct {
	reader Reader
	logger zerolog.Logger
}

// NewResolver creates a resolver reading from r.
func NewResolver(r Reader, logger zerolog.Logger) *Resolver {
	return &Resolver{
		reader: r,
		logger: logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve decomposes key, then loads the collection, the object, its type
// and every meta value attached to it from one snapshot.
//
// Errors wrap types.ErrMalformedKey, types.ErrObjectNotFound, or, for store
// corruption, types.ErrTypeNotFound and types.ErrFieldNotFound.
func (s *Resolver) Resolve(ctx context.Context, key string) (*types.ResolvedObject, error) {
	ctx, span := tracer.Start(ctx, "catalogue.Resolve",
		trace.WithAttributes(attribute.String("catalogue.key", key)))
	defer span.End()

	obj, err := s.resolve(ctx, key)
	if err != nil {
		s.logFailure(key, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("catalogue.object_id", obj.ID),
		attribute.Int("catalogue.meta_values", len(obj.Meta)),
	)
	return obj, nil
}

func (s *Resolver) resolve(ctx context.Context, key string) (*types.ResolvedObject, error) {
	ck, err := types.ParseCatalogKey(key)
	if err != nil {
		return nil, err
	}

	var obj *types.ResolvedObject
	err = s.reader.Read(ctx, func(r types.Registry) error {
		col, err := r.ResolveCollection(ctx, ck.Collection)
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("%w: unknown collection %q", types.ErrObjectNotFound, ck.Collection)
		}
		if err != nil {
			return err
		}

		row, err := r.LoadObject(ctx, col.ID, ck.Index)
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("%w: no object %d in %q", types.ErrObjectNotFound, ck.Index, ck.Collection)
		}
		if err != nil {
			return err
		}

		typ, err := r.LoadType(ctx, row.TypeID)
		if err != nil {
			return fmt.Errorf("object %d: %w", row.ID, err)
		}

		values, err := r.LoadMetaValues(ctx, row.ID)
		if err != nil {
			return err
		}
		fields, err := r.LoadFields(ctx, fieldIDs(values))
		if err != nil {
			return err
		}
		meta, err := Enrich(values, fields)
		if err != nil {
			return err
		}

		obj = &types.ResolvedObject{
			ID:         row.ID,
			Collection: col.Name,
			Index:      row.Index,
			TypeID:     typ.ID,
			TypeName:   typ.Name,
			Layout:     typ.MetaLayout,
			Meta:       meta,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// logFailure logs user errors at debug level and store corruption at error
// level so integrity faults stand out from ordinary navigation.
func (s *Resolver) logFailure(key string, err error) {
	switch {
	case types.IsIntegrity(err):
		s.logger.Error().Err(err).Str("key", key).Msg("catalogue integrity violation")
	case errors.Is(err, types.ErrMalformedKey), errors.Is(err, types.ErrObjectNotFound):
		s.logger.Debug().Err(err).Str("key", key).Msg("catalogue key not resolved")
	default:
		s.logger.Error().Err(err).Str("key", key).Msg("resolve failed")
	}
}

// Latest returns up to limit objects, newest first, titled with the value
// of titleField.
func (s *Resolver) Latest(ctx context.Context, limit int, titleField int64) ([]types.ObjectSummary, error) {
	var summaries []types.ObjectSummary
	err := s.reader.Read(ctx, func(r types.Registry) error {
		var err error
		summaries, err = r.LatestObjects(ctx, limit, titleField)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Collections returns every collection ordered by name.
func (s *Resolver) Collections(ctx context.Context) ([]types.Collection, error) {
	var collections []types.Collection
	err := s.reader.Read(ctx, func(r types.Registry) error {
		var err error
		collections, err = r.Collections(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return collections, nil
}

// Stats counts the objects of every collection.
func (s *Resolver) Stats(ctx context.Context) ([]types.CollectionStat, error) {
	var stats []types.CollectionStat
	err := s.reader.Read(ctx, func(r types.Registry) error {
		var err error
		stats, err = r.CollectionStats(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
