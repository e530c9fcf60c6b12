package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lunarbyte/tradevalues/internal/auth"
	"github.com/lunarbyte/tradevalues/internal/inventory"
	"github.com/lunarbyte/tradevalues/internal/logger"
	"github.com/lunarbyte/tradevalues/internal/metrics"
)

// HandleListInventory serves the authenticated user's own inventory
// @Summary List inventory
// @Tags inventory
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/inventory [get]
func HandleListInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, ErrMsgAuthRequiredError)
			return
		}

		entries, err := svc.ListItems(r.Context(), user.ID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list inventory", "error", err, "user_id", user.ID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}

// AddInventoryItemRequest carries an optional quantity. It is not
// validated here: anything below 1 degrades to 1 in the service.
type AddInventoryItemRequest struct {
	Quantity int `json:"quantity"`
}

// HandleAddInventoryItem adds an item to the caller's inventory.
// An empty body counts as quantity 1.
// @Summary Add inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param slug path string true "Item slug"
// @Param request body AddInventoryItemRequest false "Quantity"
// @Success 200 {object} DataResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/inventory/{slug} [post]
func HandleAddInventoryItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, ErrMsgAuthRequiredError)
			return
		}

		slug := chi.URLParam(r, "slug")

		var req AddInventoryItemRequest
		if r.ContentLength > 0 {
			if err := DecodeAndValidateRequest(r, w, &req, "Add inventory item"); err != nil {
				return
			}
		}

		entry, err := svc.AddItem(r.Context(), user.ID, slug, req.Quantity)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to add inventory item", "error", err, "user_id", user.ID, "slug", slug)
			respondServiceError(w, err)
			return
		}

		metrics.InventoryAdds.WithLabelValues(slug).Inc()
		respondJSON(w, http.StatusOK, DataResponse{Message: "Item added to inventory", Data: entry})
	}
}

// HandleRemoveInventoryItem removes one of the caller's inventory rows
// @Summary Remove inventory item
// @Tags inventory
// @Produce json
// @Param id path int true "Inventory row id"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/inventory/{id} [delete]
func HandleRemoveInventoryItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, ErrMsgAuthRequiredError)
			return
		}

		id, ok := URLParamInt(r, w, "id")
		if !ok {
			return
		}

		if err := svc.RemoveItem(r.Context(), user.ID, id); err != nil {
			logger.FromContext(r.Context()).Error("Failed to remove inventory item", "error", err, "user_id", user.ID, "row_id", id)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item removed from inventory"})
	}
}
