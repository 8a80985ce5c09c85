package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// ItemRepository implements the item catalog repository for PostgreSQL
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `item_id, item_name, item_type, slot, description, base_value`

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	var slot, description pgtype.Text
	if err := row.Scan(&item.ID, &item.Name, &item.Type, &slot, &description, &item.BaseValue); err != nil {
		return nil, err
	}
	item.Slot = slot.String
	item.Description = description.String
	return &item, nil
}

// GetItem returns a catalog entry, or (nil, nil) when unknown.
func (r *ItemRepository) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1`
	item, err := scanItem(r.db.QueryRow(ctx, query, itemID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, wrapDBError("failed to get item", err)
	}
	return item, nil
}

// ListItems returns the full catalog.
func (r *ItemRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY item_id ASC`)
	if err != nil {
		return nil, wrapDBError("failed to query items", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, wrapDBError("failed to scan item", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("failed to read items", err)
	}
	return items, nil
}

// UpsertItem inserts or refreshes a catalog entry. Seeding only.
func (r *ItemRepository) UpsertItem(ctx context.Context, item domain.Item) error {
	query := `
		INSERT INTO items (item_id, item_name, item_type, slot, description, base_value)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (item_id) DO UPDATE
		SET item_name = EXCLUDED.item_name,
		    item_type = EXCLUDED.item_type,
		    slot = EXCLUDED.slot,
		    description = EXCLUDED.description,
		    base_value = EXCLUDED.base_value`

	_, err := r.db.Exec(ctx, query,
		item.ID, item.Name, item.Type, textOrNil(item.Slot), textOrNil(item.Description), item.BaseValue)
	if err != nil {
		return wrapDBError("failed to upsert item", err)
	}
	return nil
}
