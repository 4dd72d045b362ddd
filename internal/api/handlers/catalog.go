package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/server-price-alerts/internal/catalog"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// CatalogHandler serves the offer catalog, latest prices and price history.
// Listing routes use the same wire shapes as the upstream catalog API so
// catalog.Client can read from this server.
type CatalogHandler struct {
	provider catalog.Provider
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(p catalog.Provider) *CatalogHandler {
	return &CatalogHandler{provider: p}
}

// ListServicesOutput is the full catalog listing.
type ListServicesOutput struct {
	Body catalog.ServicesResponse
}

// ListServices returns every service in the catalog.
func (h *CatalogHandler) ListServices(ctx context.Context, _ *struct{}) (*ListServicesOutput, error) {
	services, err := h.provider.ListServices(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("listing services: " + err.Error())
	}
	if services == nil {
		services = []domain.Service{}
	}
	return &ListServicesOutput{Body: catalog.ServicesResponse{Response: services}}, nil
}

// LatestPricesInput names the services to price.
type LatestPricesInput struct {
	Body struct {
		ServiceIDs []int `json:"service_ids" minItems:"1" doc:"Catalog service ids" example:"[2307843, 2311502]"`
	}
}

// LatestPricesOutput lists the latest price per service.
type LatestPricesOutput struct {
	Body catalog.PricesResponse
}

// LatestPrices returns the latest known price for each requested service.
func (h *CatalogHandler) LatestPrices(ctx context.Context, input *LatestPricesInput) (*LatestPricesOutput, error) {
	points, err := h.provider.LatestPrices(ctx, input.Body.ServiceIDs)
	if err != nil {
		return nil, huma.Error502BadGateway("fetching latest prices: " + err.Error())
	}
	if points == nil {
		points = []domain.PricePoint{}
	}
	return &LatestPricesOutput{Body: catalog.PricesResponse{Response: points}}, nil
}

// PriceHistoryInput selects the services whose history is returned.
type PriceHistoryInput struct {
	Body struct {
		ServiceIDs        []int `json:"service_ids" minItems:"1" doc:"Catalog service ids"`
		MaxServicesReturn int   `json:"max_services_return,omitempty" doc:"Cheapest services to return, clamped to 1..100" example:"20"`
	}
}

// PriceHistoryOutput lists deduplicated price histories, cheapest first.
type PriceHistoryOutput struct {
	Body catalog.HistoryResponse
}

// PriceHistory returns the history of the cheapest requested services.
func (h *CatalogHandler) PriceHistory(ctx context.Context, input *PriceHistoryInput) (*PriceHistoryOutput, error) {
	limit := catalog.ClampHistoryLimit(input.Body.MaxServicesReturn)
	history, err := h.provider.PriceHistory(ctx, input.Body.ServiceIDs, limit)
	if errors.Is(err, catalog.ErrNoServiceIDs) {
		return nil, huma.Error400BadRequest(err.Error())
	}
	if err != nil {
		return nil, huma.Error502BadGateway("fetching price history: " + err.Error())
	}
	if history == nil {
		history = []domain.PriceHistory{}
	}
	return &PriceHistoryOutput{Body: catalog.HistoryResponse{Result: history}}, nil
}

// SearchServicesInput holds the hardware filters.
type SearchServicesInput struct {
	CPU    string   `query:"cpu" doc:"Exact CPU model"`
	RAM    string   `query:"ram" doc:"Exact RAM description" example:"64-DDR4"`
	Region string   `query:"region" doc:"Datacenter region" example:"FSN"`
	GPU    string   `query:"gpu" doc:"Exact GPU model"`
	Disks  []string `query:"disk" maxItems:"4" doc:"Disk specs as <qty>x-<cap>GB-<type>" example:"2x-512GB-nvme"`
}

func (in *SearchServicesInput) filter() catalog.Filter {
	return catalog.Filter{
		CPU:    in.CPU,
		RAM:    in.RAM,
		Region: in.Region,
		GPU:    in.GPU,
		Disks:  in.Disks,
	}
}

// SearchServicesOutput lists the matching services.
type SearchServicesOutput struct {
	Body struct {
		Services []domain.Service `json:"services" doc:"Matching services"`
		Total    int              `json:"total" doc:"Number of matches"`
	}
}

// SearchServices filters the catalog by hardware.
func (h *CatalogHandler) SearchServices(ctx context.Context, input *SearchServicesInput) (*SearchServicesOutput, error) {
	services, err := h.provider.ListServices(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("listing services: " + err.Error())
	}

	matches, err := catalog.Search(services, input.filter())
	switch {
	case errors.Is(err, catalog.ErrTooManyMatches):
		return nil, huma.Error422UnprocessableEntity(err.Error())
	case err != nil:
		return nil, huma.Error400BadRequest(err.Error())
	}

	resp := &SearchServicesOutput{}
	resp.Body.Services = matches
	resp.Body.Total = len(matches)
	return resp, nil
}

// SuggestInput selects the field to complete and the current filters.
type SuggestInput struct {
	SearchServicesInput

	Field string `query:"field" required:"true" enum:"cpu,ram,region,datacenter,gpu,storage,service_id" doc:"Field to complete"`
	Query string `query:"q" doc:"Case-insensitive substring to match"`
}

// SuggestOutput lists autocomplete suggestions.
type SuggestOutput struct {
	Body struct {
		Suggestions []catalog.Suggestion `json:"suggestions" doc:"At most 25 suggestions"`
	}
}

// Suggest lists autocomplete values for one field given the other filters.
func (h *CatalogHandler) Suggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error) {
	field, err := catalog.ParseField(input.Field)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	services, err := h.provider.ListServices(ctx)
	if err != nil {
		return nil, huma.Error502BadGateway("listing services: " + err.Error())
	}

	suggestions, err := catalog.Suggest(services, field, input.Query, input.filter())
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	resp := &SuggestOutput{}
	resp.Body.Suggestions = suggestions
	return resp, nil
}

// RegisterCatalogRoutes registers catalog endpoints with the Huma API.
func RegisterCatalogRoutes(api huma.API, h *CatalogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-services",
		Method:      http.MethodGet,
		Path:        "/api/v1/services",
		Summary:     "List catalog services",
		Description: "Returns every dedicated server offer in the catalog.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusBadGateway},
	}, h.ListServices)

	huma.Register(api, huma.Operation{
		OperationID: "search-services",
		Method:      http.MethodGet,
		Path:        "/api/v1/services/search",
		Summary:     "Search catalog services",
		Description: "Filters the catalog by CPU, RAM, region, GPU and up to four disk specs.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, h.SearchServices)

	huma.Register(api, huma.Operation{
		OperationID: "suggest-services",
		Method:      http.MethodGet,
		Path:        "/api/v1/services/suggest",
		Summary:     "Autocomplete catalog values",
		Description: "Lists distinct values of one field among services matching the other filters.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusBadRequest, http.StatusBadGateway},
	}, h.Suggest)

	huma.Register(api, huma.Operation{
		OperationID: "latest-prices",
		Method:      http.MethodPost,
		Path:        "/api/v1/prices/latest",
		Summary:     "Latest prices",
		Description: "Returns the newest price of each requested service. Services without a price are omitted.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusBadGateway},
	}, h.LatestPrices)

	huma.Register(api, huma.Operation{
		OperationID: "price-history",
		Method:      http.MethodPost,
		Path:        "/api/v1/prices/history",
		Summary:     "Price history",
		Description: "Returns the price history of the cheapest requested services, deduplicated by price, newest first.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusBadRequest, http.StatusBadGateway},
	}, h.PriceHistory)
}
