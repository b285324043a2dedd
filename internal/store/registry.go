package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/mesh-intelligence/archief/pkg/types"
)

var _ types.Registry = (*registry)(nil)

// registry serves catalogue lookups against one read transaction.
type registry struct {
	q        sqlscan.Querier
	sb       sq.StatementBuilderType
	rowOrder string
}

// get builds the query and scans exactly one row into dst.
func (r *registry) get(ctx context.Context, dst any, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return sqlscan.Get(ctx, r.q, dst, query, args...)
}

// selectAll builds the query and scans every row into dst.
func (r *registry) selectAll(ctx context.Context, dst any, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return sqlscan.Select(ctx, r.q, dst, query, args...)
}
