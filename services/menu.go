package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"catering-backend/db"
	"catering-backend/models"
)

const menuColumns = `
	item_id, item_name, categories, price_per_plate, is_vegetarian, image_url,
	description, is_available, stock_quantity, total_orders_count, created_at`

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	var m models.MenuItem
	var categories []byte
	err := row.Scan(
		&m.ID, &m.Name, &categories, &m.PricePerPlate, &m.IsVegetarian,
		&m.ImageURL, &m.Description, &m.IsAvailable, &m.StockQuantity,
		&m.TotalOrdersCount, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &m.Categories); err != nil {
			return nil, fmt.Errorf("decode categories for item %d: %w", m.ID, err)
		}
	}
	return &m, nil
}

// ListMenu returns menu items for browsing. Category filters match any of an
// item's categories; vegOnly keeps vegetarian items.
func ListMenu(ctx context.Context, category string, vegOnly bool) ([]models.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items`
	var conds []string
	var args []any
	if category != "" {
		args = append(args, category)
		conds = append(conds, fmt.Sprintf("categories ? $%d", len(args)))
	}
	if vegOnly {
		conds = append(conds, "is_vegetarian")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY item_name, item_id`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func GetMenuItem(ctx context.Context, itemID int64) (*models.MenuItem, error) {
	return scanMenuItem(db.Pool.QueryRow(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE item_id = $1`, itemID))
}

// CreateMenuItem inserts an admin-defined item. Availability follows the
// initial stock unless set explicitly.
func CreateMenuItem(ctx context.Context, input models.MenuItemInput) (*models.MenuItem, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, invalid("item_name is required")
	}
	if input.Price < 0 {
		return nil, invalid("price must be >= 0")
	}
	stock := 0
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, invalid("stock_quantity must be >= 0")
		}
		stock = *input.StockQuantity
	}
	available := stock > 0
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}
	veg := input.IsVegetarian != nil && *input.IsVegetarian

	categories, err := json.Marshal(normalizeCategories(input.Categories))
	if err != nil {
		return nil, fmt.Errorf("encode categories: %w", err)
	}

	return scanMenuItem(db.Pool.QueryRow(ctx, `
		INSERT INTO menu_items (
			item_name, categories, price_per_plate, is_vegetarian, image_url,
			description, is_available, stock_quantity
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+menuColumns,
		strings.TrimSpace(input.Name), categories, input.Price, veg,
		input.ImageURL, input.Description, available, stock,
	))
}

// UpdateMenuItem applies a partial admin edit. Stock edits keep the
// availability flag in sync unless the request sets it explicitly.
func UpdateMenuItem(ctx context.Context, itemID int64, input models.MenuItemInput) (*models.MenuItem, error) {
	current, err := GetMenuItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) != "" {
		current.Name = strings.TrimSpace(input.Name)
	}
	if input.Categories != nil {
		current.Categories = normalizeCategories(input.Categories)
	}
	if input.Price > 0 {
		current.PricePerPlate = input.Price
	}
	if input.IsVegetarian != nil {
		current.IsVegetarian = *input.IsVegetarian
	}
	if input.ImageURL != "" {
		current.ImageURL = input.ImageURL
	}
	if input.Description != "" {
		current.Description = input.Description
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, invalid("stock_quantity must be >= 0")
		}
		current.StockQuantity = *input.StockQuantity
		current.IsAvailable = current.StockQuantity > 0
	}
	if input.IsAvailable != nil {
		current.IsAvailable = *input.IsAvailable
	}

	categories, err := json.Marshal(current.Categories)
	if err != nil {
		return nil, fmt.Errorf("encode categories: %w", err)
	}
	return scanMenuItem(db.Pool.QueryRow(ctx, `
		UPDATE menu_items SET
			item_name = $1, categories = $2, price_per_plate = $3,
			is_vegetarian = $4, image_url = $5, description = $6,
			is_available = $7, stock_quantity = $8
		WHERE item_id = $9
		RETURNING `+menuColumns,
		current.Name, categories, current.PricePerPlate, current.IsVegetarian,
		current.ImageURL, current.Description, current.IsAvailable,
		current.StockQuantity, itemID,
	))
}

// DeleteMenuItem removes an item. Items referenced by past orders cannot be
// deleted; the database foreign key rejects it and the caller gets
// ErrConflict.
func DeleteMenuItem(ctx context.Context, itemID int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM menu_items WHERE item_id = $1`, itemID)
	if err != nil {
		if strings.Contains(err.Error(), "violates foreign key") {
			return fmt.Errorf("%w: item %d appears in existing orders", ErrConflict, itemID)
		}
		return fmt.Errorf("delete menu item %d: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCategories returns the distinct category names in use.
func ListCategories(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT DISTINCT jsonb_array_elements_text(categories) AS c
		FROM menu_items
		ORDER BY c`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func normalizeCategories(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" || seen[strings.ToLower(c)] {
			continue
		}
		seen[strings.ToLower(c)] = true
		out = append(out, c)
	}
	return out
}
