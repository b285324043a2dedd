package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/mesh-intelligence/archief/pkg/types"
)

const messagesTable = "messages"

var messageColumns = []string{
	"id",
	"COALESCE(title, '') AS title",
	"COALESCE(date, '') AS date",
	"COALESCE(author, '') AS author",
	"COALESCE(content, '') AS content",
}

// LatestMessages returns up to limit messages after skipping offset, newest
// (highest id) first. No upper bound is placed on limit.
func (b *Backend) LatestMessages(ctx context.Context, limit, offset int) ([]types.Message, error) {
	if limit < 0 || offset < 0 {
		return nil, types.ErrInvalidLimit
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCatalogueDetached
	}

	query, args, err := b.dialect.builder().
		Select(messageColumns...).
		From(messagesTable).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	messages := []types.Message{}
	if err := sqlscan.Select(ctx, b.db, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}

// LoadMessage returns the message with the given id.
func (b *Backend) LoadMessage(ctx context.Context, id int64) (types.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.Message{}, types.ErrCatalogueDetached
	}

	query, args, err := b.dialect.builder().
		Select(messageColumns...).
		From(messagesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return types.Message{}, fmt.Errorf("build query: %w", err)
	}

	var m types.Message
	if err := sqlscan.Get(ctx, b.db, &m, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return types.Message{}, types.ErrNotFound
		}
		return types.Message{}, fmt.Errorf("loading message %d: %w", id, err)
	}
	return m, nil
}
