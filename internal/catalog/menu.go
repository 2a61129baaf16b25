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
	"github.com/shopspring/decimal"
)

// MenuStore defines the database methods needed to load a public menu.
// Satisfied by *database.Queries.
type MenuStore interface {
	GetActiveRestaurantBySlug(ctx context.Context, slug string) (database.Restaurant, error)
	GetRestaurantSettings(ctx context.Context, restaurantID uuid.UUID) (database.RestaurantSetting, error)
	ListActiveMenus(ctx context.Context, restaurantID uuid.UUID) ([]database.Menu, error)
	ListAvailableMenuItems(ctx context.Context, restaurantID uuid.UUID) ([]database.MenuItem, error)
	ListAvailableVariations(ctx context.Context, restaurantID uuid.UUID) ([]database.MenuItemVariation, error)
	ListAvailableAddons(ctx context.Context, restaurantID uuid.UUID) ([]database.MenuItemAddon, error)
}

// Storefront is what an ordering page needs to build a cart: the restaurant,
// which order types it takes, and every orderable menu row. Discounts are
// not part of it; coupon codes stay private.
type Storefront struct {
	RestaurantID      uuid.UUID
	Name              string
	Slug              string
	PickupEnabled     bool
	DeliveryEnabled   bool
	MinimumOrderValue decimal.Decimal
	Menus             []MenuSection
}

type MenuSection struct {
	ID      uuid.UUID
	Name    string
	TaxRate decimal.Decimal
	Items   []MenuEntry
}

type MenuEntry struct {
	ID         uuid.UUID
	Name       string
	Price      decimal.Decimal
	Variations []VariationEntry
	Addons     []AddonEntry
}

type VariationEntry struct {
	ID              uuid.UUID
	Name            string
	PriceAdjustment decimal.Decimal
}

type AddonEntry struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

// MenuReader loads storefronts. Like Reader it reads the live catalog on
// every call.
type MenuReader struct {
	store MenuStore
}

func NewMenuReader(store MenuStore) *MenuReader {
	return &MenuReader{store: store}
}

// Storefront returns the active restaurant with the given slug and its
// available menu rows. Unknown or inactive restaurants are apperr.ErrNotFound.
func (r *MenuReader) Storefront(ctx context.Context, slug string) (*Storefront, error) {
	restaurant, err := r.store.GetActiveRestaurantBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("restaurant %q: %w", slug, apperr.ErrNotFound)
		}
		return nil, database.Classify("get restaurant", err)
	}

	sf := &Storefront{
		RestaurantID: restaurant.ID,
		Name:         restaurant.Name,
		Slug:         restaurant.Slug,
		Menus:        []MenuSection{},
	}

	settings, err := r.store.GetRestaurantSettings(ctx, restaurant.ID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		defaults := pricing.DefaultSettings()
		sf.PickupEnabled = defaults.PickupEnabled
		sf.DeliveryEnabled = defaults.DeliveryEnabled
		sf.MinimumOrderValue = defaults.MinimumOrderValue
	case err != nil:
		return nil, database.Classify("get settings", err)
	default:
		sf.PickupEnabled = settings.PickupEnabled
		sf.DeliveryEnabled = settings.DeliveryEnabled
		sf.MinimumOrderValue = database.NumericToDecimal(settings.MinimumOrderValue)
	}

	menus, err := r.store.ListActiveMenus(ctx, restaurant.ID)
	if err != nil {
		return nil, database.Classify("list menus", err)
	}
	items, err := r.store.ListAvailableMenuItems(ctx, restaurant.ID)
	if err != nil {
		return nil, database.Classify("list menu items", err)
	}
	variations, err := r.store.ListAvailableVariations(ctx, restaurant.ID)
	if err != nil {
		return nil, database.Classify("list variations", err)
	}
	addons, err := r.store.ListAvailableAddons(ctx, restaurant.ID)
	if err != nil {
		return nil, database.Classify("list add-ons", err)
	}

	addonsByItem := map[uuid.UUID][]AddonEntry{}
	for _, a := range addons {
		addonsByItem[a.MenuItemID] = append(addonsByItem[a.MenuItemID], AddonEntry{
			ID:    a.ID,
			Name:  a.Name,
			Price: database.NumericToDecimal(a.Price),
		})
	}
	variationsByItem := map[uuid.UUID][]database.MenuItemVariation{}
	for _, v := range variations {
		variationsByItem[v.MenuItemID] = append(variationsByItem[v.MenuItemID], v)
	}

	itemsByMenu := map[uuid.UUID][]MenuEntry{}
	for _, it := range items {
		price := database.NumericToDecimal(it.Price)
		entry := MenuEntry{
			ID:         it.ID,
			Name:       it.Name,
			Price:      price,
			Variations: []VariationEntry{},
			Addons:     addonsByItem[it.ID],
		}
		if entry.Addons == nil {
			entry.Addons = []AddonEntry{}
		}
		for _, v := range variationsByItem[it.ID] {
			adj := database.NumericToDecimal(v.PriceAdjustment)
			// Orders for a variation that prices below zero are rejected.
			if price.Add(adj).Sign() < 0 {
				continue
			}
			entry.Variations = append(entry.Variations, VariationEntry{ID: v.ID, Name: v.Name, PriceAdjustment: adj})
		}
		itemsByMenu[it.MenuID] = append(itemsByMenu[it.MenuID], entry)
	}

	for _, m := range menus {
		section := MenuSection{
			ID:      m.ID,
			Name:    m.Name,
			TaxRate: database.NumericToDecimal(m.TaxRate),
			Items:   itemsByMenu[m.ID],
		}
		if section.Items == nil {
			section.Items = []MenuEntry{}
		}
		sf.Menus = append(sf.Menus, section)
	}
	return sf, nil
}
