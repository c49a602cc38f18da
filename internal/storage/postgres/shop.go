package postgres

import (
	"context"

	"dulpton/internal/domain"
	"dulpton/internal/storage"
)

const itemColumns = `id, name, description, price, type, effect, COALESCE(img_url, '')`
const inventoryColumns = `id, user_id, item_id, purchased_at, is_active, expires_at`

func (s *Store) GetStoreItems(ctx context.Context) ([]domain.StoreItem, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+itemColumns+` FROM store_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.StoreItem
	for rows.Next() {
		var it domain.StoreItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price,
			&it.Type, &it.Effect, &it.ImgURL); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Store) GetStoreItem(ctx context.Context, id int64) (*domain.StoreItem, error) {
	var it domain.StoreItem
	err := s.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM store_items WHERE id = $1`, id,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Type, &it.Effect, &it.ImgURL)
	if err != nil {
		return nil, mapErr(err)
	}
	return &it, nil
}

func (s *Store) CreateStoreItem(ctx context.Context, it *domain.StoreItem) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO store_items (name, description, price, type, effect, img_url)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		 RETURNING id`,
		it.Name, it.Description, it.Price, it.Type, it.Effect, it.ImgURL,
	).Scan(&it.ID)
}

func (s *Store) GetUserInventory(ctx context.Context, userID int64) ([]domain.UserInventory, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+inventoryColumns+` FROM user_inventory WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.UserInventory
	for rows.Next() {
		var inv domain.UserInventory
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.ItemID,
			&inv.PurchasedAt, &inv.IsActive, &inv.ExpiresAt); err != nil {
			return nil, err
		}
		entries = append(entries, inv)
	}
	return entries, rows.Err()
}

func (s *Store) CreateUserInventory(ctx context.Context, inv *domain.UserInventory) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO user_inventory (user_id, item_id, is_active, expires_at, purchased_at)
		 VALUES ($1, $2, $3, $4, COALESCE($5::timestamptz, NOW()))
		 RETURNING id, purchased_at`,
		inv.UserID, inv.ItemID, inv.IsActive, inv.ExpiresAt, tsOrNil(inv.PurchasedAt),
	).Scan(&inv.ID, &inv.PurchasedAt)
}

func (s *Store) UpdateUserInventory(ctx context.Context, id int64, upd storage.UserInventoryUpdate) (*domain.UserInventory, error) {
	var set setClause
	if upd.IsActive != nil {
		set.add("is_active", *upd.IsActive)
	}
	if upd.ExpiresAt != nil {
		set.add("expires_at", *upd.ExpiresAt)
	}

	var inv domain.UserInventory
	query := `SELECT ` + inventoryColumns + ` FROM user_inventory WHERE id = $1`
	args := []any{id}
	if !set.empty() {
		var clause string
		clause, args = set.where(id)
		query = `UPDATE user_inventory ` + clause + ` RETURNING ` + inventoryColumns
	}
	err := s.db.QueryRow(ctx, query, args...).Scan(&inv.ID, &inv.UserID, &inv.ItemID,
		&inv.PurchasedAt, &inv.IsActive, &inv.ExpiresAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &inv, nil
}
