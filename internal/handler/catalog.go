package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lunarbyte/tradevalues/internal/catalog"
	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/logger"
)

// HandleGetSummary serves the landing-page aggregate
// @Summary Site summary
// @Description Returns item count, categories and featured items
// @Tags catalog
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/summary [get]
func HandleGetSummary(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.GetSummary(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get summary", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: summary})
	}
}

// HandleListCategories lists all categories
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/categories [get]
func HandleListCategories(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list categories", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: categories})
	}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

// HandleCreateCategory creates a category (staff only)
// @Summary Create category
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category details"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/categories [post]
func HandleCreateCategory(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCategoryRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create category"); err != nil {
			return
		}

		category, err := svc.CreateCategory(r.Context(), catalog.CategoryInput{
			Name:        req.Name,
			Description: req.Description,
			Color:       req.Color,
		})
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to create category", "error", err, "name", req.Name)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: "Category created", Data: category})
	}
}

// HandleDeleteCategory deletes an empty category (staff only)
// @Summary Delete category
// @Tags catalog
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/categories/{id} [delete]
func HandleDeleteCategory(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamInt(r, w, "id")
		if !ok {
			return
		}

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			logger.FromContext(r.Context()).Error("Failed to delete category", "error", err, "category_id", id)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Category deleted"})
	}
}

// HandleListItems serves the filtered, paginated catalog listing
// @Summary Browse items
// @Description Filter, sort and page through the catalog
// @Tags catalog
// @Produce json
// @Param q query string false "Name search"
// @Param category query string false "Category slug"
// @Param rarity query string false "Rarity"
// @Param type query string false "Item type"
// @Param trend query string false "Trend"
// @Param min_value query int false "Minimum value"
// @Param max_value query int false "Maximum value"
// @Param sort query string false "Sort key"
// @Param page query int false "Page number"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/items [get]
func HandleListItems(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, ok := itemFilterFromQuery(r, w)
		if !ok {
			return
		}

		page, err := svc.BrowseItems(r.Context(), filter)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list items", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: page})
	}
}

// itemFilterFromQuery builds the catalog filter from query parameters.
// Unknown enum values are rejected rather than silently ignored.
func itemFilterFromQuery(r *http.Request, w http.ResponseWriter) (domain.ItemFilter, bool) {
	query := r.URL.Query()

	filter := domain.ItemFilter{
		Query:        query.Get("q"),
		CategorySlug: query.Get("category"),
		Rarity:       query.Get("rarity"),
		ItemType:     query.Get("type"),
		Trend:        query.Get("trend"),
		Sort:         query.Get("sort"),
		Page:         1,
	}

	if filter.Rarity != "" && !domain.ValidRarities[domain.Rarity(filter.Rarity)] {
		respondError(w, http.StatusBadRequest, "Unknown rarity")
		return filter, false
	}
	if filter.ItemType != "" && !domain.ValidItemTypes[domain.ItemType(filter.ItemType)] {
		respondError(w, http.StatusBadRequest, "Unknown item type")
		return filter, false
	}
	if filter.Trend != "" && !domain.ValidTrends[domain.Trend(filter.Trend)] {
		respondError(w, http.StatusBadRequest, "Unknown trend")
		return filter, false
	}

	// Non-numeric value bounds are ignored rather than rejected
	if minValue, err := queryInt(r, "min_value"); err == nil {
		filter.MinValue = minValue
	}
	if maxValue, err := queryInt(r, "max_value"); err == nil {
		filter.MaxValue = maxValue
	}

	if pageParam, err := queryInt(r, "page"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPage)
		return filter, false
	} else if pageParam != nil {
		if *pageParam < 1 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidPage)
			return filter, false
		}
		filter.Page = *pageParam
	}

	return filter, true
}

// HandleItemPicker serves the capped unpaginated item lookup
// @Summary Item picker
// @Description Compact item list for selection widgets
// @Tags catalog
// @Produce json
// @Param q query string false "Name search"
// @Param category query string false "Category slug"
// @Param rarity query string false "Rarity"
// @Param sort query string false "Sort key"
// @Success 200 {object} DataResponse
// @Router /api/v1/items/picker [get]
func HandleItemPicker(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		rarity := query.Get("rarity")
		if rarity != "" && !domain.ValidRarities[domain.Rarity(rarity)] {
			respondError(w, http.StatusBadRequest, "Unknown rarity")
			return
		}

		items, err := svc.PickerItems(r.Context(), domain.PickerFilter{
			Query:        query.Get("q"),
			CategorySlug: query.Get("category"),
			Rarity:       rarity,
			Sort:         query.Get("sort"),
		})
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to run item picker", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: items})
	}
}

// ItemDetail augments an item with its derived presentation fields
type ItemDetail struct {
	domain.Item
	Stars int `json:"stars"`
}

// HandleGetItem serves one item by slug
// @Summary Item detail
// @Tags catalog
// @Produce json
// @Param slug path string true "Item slug"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/items/{slug} [get]
func HandleGetItem(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		item, err := svc.GetItem(r.Context(), slug)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: ItemDetail{
			Item:  *item,
			Stars: item.StarCount(),
		}})
	}
}

type ItemRequest struct {
	Name         string `json:"name" validate:"required,max=150"`
	CategoryID   int    `json:"category_id" validate:"required,gt=0"`
	ItemType     string `json:"item_type" validate:"required,itemtype"`
	Rarity       string `json:"rarity" validate:"required,rarity"`
	Value        int    `json:"value" validate:"gte=0"`
	Demand       int    `json:"demand" validate:"required,gte=1,lte=10"`
	Trend        string `json:"trend" validate:"required,trend"`
	IsLimited    bool   `json:"is_limited"`
	Featured     bool   `json:"featured"`
	ObtainedFrom string `json:"obtained_from" validate:"max=200"`
	ImageURL     string `json:"image_url" validate:"omitempty,url,max=500"`
	Notes        string `json:"notes" validate:"max=5000"`
}

func (req ItemRequest) toInput() catalog.ItemInput {
	return catalog.ItemInput{
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		ItemType:     domain.ItemType(req.ItemType),
		Rarity:       domain.Rarity(req.Rarity),
		Value:        req.Value,
		Demand:       req.Demand,
		Trend:        domain.Trend(req.Trend),
		IsLimited:    req.IsLimited,
		Featured:     req.Featured,
		ObtainedFrom: req.ObtainedFrom,
		ImageURL:     req.ImageURL,
		Notes:        req.Notes,
	}
}

// HandleCreateItem creates a catalog item (staff only)
// @Summary Create item
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body ItemRequest true "Item details"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/items [post]
func HandleCreateItem(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create item"); err != nil {
			return
		}

		item, err := svc.CreateItem(r.Context(), req.toInput())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to create item", "error", err, "name", req.Name)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: "Item created", Data: item})
	}
}

// HandleUpdateItem rewrites an item (staff only)
// @Summary Update item
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param request body ItemRequest true "Item details"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/items/{id} [put]
func HandleUpdateItem(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamInt(r, w, "id")
		if !ok {
			return
		}

		var req ItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update item"); err != nil {
			return
		}

		item, err := svc.UpdateItem(r.Context(), id, req.toInput())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to update item", "error", err, "item_id", id)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: "Item updated", Data: item})
	}
}

// HandleDeleteItem deletes an item (staff only)
// @Summary Delete item
// @Tags catalog
// @Produce json
// @Param id path int true "Item id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/items/{id} [delete]
func HandleDeleteItem(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamInt(r, w, "id")
		if !ok {
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			logger.FromContext(r.Context()).Error("Failed to delete item", "error", err, "item_id", id)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item deleted"})
	}
}
