// Package catalog reads authoritative menu prices for a cart.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/platewise/api/internal/apperr"
	"github.com/platewise/api/internal/database"
	"github.com/platewise/api/internal/pricing"
)

// Store defines the database methods needed to snapshot a cart.
// Satisfied by *database.Queries.
type Store interface {
	GetMenuItemForOrder(ctx context.Context, arg database.GetMenuItemForOrderParams) (database.GetMenuItemForOrderRow, error)
	GetVariationForOrder(ctx context.Context, arg database.GetVariationForOrderParams) (database.MenuItemVariation, error)
	GetAddonForOrder(ctx context.Context, arg database.GetAddonForOrderParams) (database.MenuItemAddon, error)
}

// Request is one cart line as submitted by the customer. Prices are never
// part of a request.
type Request struct {
	MenuItemID  uuid.UUID
	VariationID uuid.NullUUID
	Quantity    int32
	Addons      []AddonRequest
}

type AddonRequest struct {
	AddonID  uuid.UUID
	Quantity int32
}

// Snapshot holds the priced lines in request order.
type Snapshot struct {
	Lines []pricing.Line
}

// MenuItemIDs returns the distinct menu item ids in the snapshot.
func (s *Snapshot) MenuItemIDs() []uuid.UUID {
	return distinct(s.Lines, func(l pricing.Line) []uuid.UUID { return []uuid.UUID{l.MenuItemID} })
}

// VariationIDs returns the distinct variation ids in the snapshot.
func (s *Snapshot) VariationIDs() []uuid.UUID {
	return distinct(s.Lines, func(l pricing.Line) []uuid.UUID {
		if l.Variation == nil {
			return nil
		}
		return []uuid.UUID{l.Variation.ID}
	})
}

// AddonIDs returns the distinct add-on ids in the snapshot.
func (s *Snapshot) AddonIDs() []uuid.UUID {
	return distinct(s.Lines, func(l pricing.Line) []uuid.UUID {
		ids := make([]uuid.UUID, len(l.Addons))
		for i, a := range l.Addons {
			ids[i] = a.ID
		}
		return ids
	})
}

func distinct(lines []pricing.Line, ids func(pricing.Line) []uuid.UUID) []uuid.UUID {
	seen := map[uuid.UUID]bool{}
	out := []uuid.UUID{}
	for _, l := range lines {
		for _, id := range ids(l) {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// Reader resolves cart lines against the live catalog. It holds no cache:
// every Snapshot call reads current prices.
type Reader struct {
	store Store
}

func NewReader(store Store) *Reader {
	return &Reader{store: store}
}

// Snapshot prices every request line. Any menu item, variation or add-on that
// does not exist, is unavailable, or belongs to another restaurant or item
// fails the whole cart with apperr.ErrNotFound.
func (r *Reader) Snapshot(ctx context.Context, restaurantID uuid.UUID, reqs []Request) (*Snapshot, error) {
	lines := make([]pricing.Line, 0, len(reqs))
	for i, req := range reqs {
		item, err := r.store.GetMenuItemForOrder(ctx, database.GetMenuItemForOrderParams{
			ID:           req.MenuItemID,
			RestaurantID: restaurantID,
		})
		if err != nil {
			return nil, lookupError(i, "menu item", req.MenuItemID, err)
		}

		l := pricing.Line{
			MenuItemID:   item.ID,
			MenuItemName: item.Name,
			MenuID:       item.MenuID,
			MenuName:     item.MenuName,
			MenuTaxRate:  database.NumericToDecimal(item.MenuTaxRate),
			BasePrice:    database.NumericToDecimal(item.Price),
			Quantity:     req.Quantity,
		}

		if req.VariationID.Valid {
			v, err := r.store.GetVariationForOrder(ctx, database.GetVariationForOrderParams{
				ID:         req.VariationID.UUID,
				MenuItemID: item.ID,
			})
			if err != nil {
				return nil, lookupError(i, "variation", req.VariationID.UUID, err)
			}
			l.Variation = &pricing.VariationSnapshot{
				ID:              v.ID,
				Name:            v.Name,
				PriceAdjustment: database.NumericToDecimal(v.PriceAdjustment),
			}
		}

		for _, ar := range req.Addons {
			a, err := r.store.GetAddonForOrder(ctx, database.GetAddonForOrderParams{
				ID:         ar.AddonID,
				MenuItemID: item.ID,
			})
			if err != nil {
				return nil, lookupError(i, "add-on", ar.AddonID, err)
			}
			l.Addons = append(l.Addons, pricing.AddonSnapshot{
				ID:       a.ID,
				Name:     a.Name,
				Price:    database.NumericToDecimal(a.Price),
				Quantity: ar.Quantity,
			})
		}

		lines = append(lines, l)
	}
	return &Snapshot{Lines: lines}, nil
}

func lookupError(i int, what string, id uuid.UUID, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("item[%d]: %s %s: %w", i, what, id, apperr.ErrNotFound)
	}
	return database.Classify(fmt.Sprintf("item[%d]: get %s", i, what), err)
}
