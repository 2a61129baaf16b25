package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/platewise/api/internal/catalog"
)

// StorefrontLoader loads the public menu of a restaurant.
// Satisfied by *catalog.MenuReader.
type StorefrontLoader interface {
	Storefront(ctx context.Context, slug string) (*catalog.Storefront, error)
}

// MenuHandler serves the menu the ordering page and widget build carts from.
type MenuHandler struct {
	menus StorefrontLoader
}

func NewMenuHandler(menus StorefrontLoader) *MenuHandler {
	return &MenuHandler{menus: menus}
}

// RegisterPublicRoutes registers the storefront endpoint.
// Expected to be mounted under /public.
func (h *MenuHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/restaurants/{slug}", h.Get)
}

// --- Response types ---

type storefrontResponse struct {
	Restaurant storefrontRestaurantResponse `json:"restaurant"`
	Menus      []menuSectionResponse        `json:"menus"`
}

type storefrontRestaurantResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	PickupEnabled     bool      `json:"pickup_enabled"`
	DeliveryEnabled   bool      `json:"delivery_enabled"`
	MinimumOrderValue string    `json:"minimum_order_value"`
}

type menuSectionResponse struct {
	ID      uuid.UUID          `json:"id"`
	Name    string             `json:"name"`
	TaxRate string             `json:"tax_rate"`
	Items   []menuItemResponse `json:"items"`
}

type menuItemResponse struct {
	ID         uuid.UUID               `json:"id"`
	Name       string                  `json:"name"`
	Price      string                  `json:"price"`
	Variations []menuVariationResponse `json:"variations"`
	Addons     []menuAddonResponse     `json:"addons"`
}

type menuVariationResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	PriceAdjustment string    `json:"price_adjustment"`
}

type menuAddonResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price string    `json:"price"`
}

// Get handles GET /public/restaurants/{slug}.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "slug")))
	if slug == "" {
		badRequest(w, "slug is required")
		return
	}

	sf, err := h.menus.Storefront(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStorefrontResponse(sf))
}

func toStorefrontResponse(sf *catalog.Storefront) storefrontResponse {
	resp := storefrontResponse{
		Restaurant: storefrontRestaurantResponse{
			ID:                sf.RestaurantID,
			Name:              sf.Name,
			Slug:              sf.Slug,
			PickupEnabled:     sf.PickupEnabled,
			DeliveryEnabled:   sf.DeliveryEnabled,
			MinimumOrderValue: sf.MinimumOrderValue.StringFixed(2),
		},
		Menus: make([]menuSectionResponse, len(sf.Menus)),
	}
	for i, m := range sf.Menus {
		section := menuSectionResponse{
			ID:      m.ID,
			Name:    m.Name,
			TaxRate: m.TaxRate.String(),
			Items:   make([]menuItemResponse, len(m.Items)),
		}
		for j, it := range m.Items {
			item := menuItemResponse{
				ID:         it.ID,
				Name:       it.Name,
				Price:      it.Price.StringFixed(2),
				Variations: make([]menuVariationResponse, len(it.Variations)),
				Addons:     make([]menuAddonResponse, len(it.Addons)),
			}
			for k, v := range it.Variations {
				item.Variations[k] = menuVariationResponse{ID: v.ID, Name: v.Name, PriceAdjustment: v.PriceAdjustment.StringFixed(2)}
			}
			for k, a := range it.Addons {
				item.Addons[k] = menuAddonResponse{ID: a.ID, Name: a.Name, Price: a.Price.StringFixed(2)}
			}
			section.Items[j] = item
		}
		resp.Menus[i] = section
	}
	return resp
}
