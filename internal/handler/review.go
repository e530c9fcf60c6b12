package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lunarbyte/tradevalues/internal/auth"
	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/logger"
	"github.com/lunarbyte/tradevalues/internal/metrics"
	"github.com/lunarbyte/tradevalues/internal/review"
)

type SubmitValueRequestRequest struct {
	RequestedValue int    `json:"requested_value" validate:"required,gt=0"`
	Reason         string `json:"reason" validate:"required,max=2000"`
}

// HandleSubmitValueRequest files a value-change request (reviewer role)
// @Summary Submit value change request
// @Tags review
// @Accept json
// @Produce json
// @Param slug path string true "Item slug"
// @Param request body SubmitValueRequestRequest true "Proposed value"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/items/{slug}/value-requests [post]
func HandleSubmitValueRequest(svc review.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, ErrMsgAuthRequiredError)
			return
		}

		slug := chi.URLParam(r, "slug")

		var req SubmitValueRequestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Submit value request"); err != nil {
			return
		}

		request, err := svc.Submit(r.Context(), user.ID, slug, req.RequestedValue, req.Reason)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to submit value request", "error", err, "user_id", user.ID, "slug", slug)
			respondServiceError(w, err)
			return
		}

		metrics.ValueRequestsSubmitted.Inc()
		respondJSON(w, http.StatusCreated, DataResponse{Message: "Request submitted for review", Data: request})
	}
}

// HandleListMyValueRequests serves the caller's own submissions
// @Summary My value change requests
// @Tags review
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/value-requests [get]
func HandleListMyValueRequests(svc review.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, ErrMsgAuthRequiredError)
			return
		}

		requests, err := svc.ListMine(r.Context(), user.ID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list own value requests", "error", err, "user_id", user.ID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: requests})
	}
}

// HandleListValueRequests serves the moderation queue (superuser only)
// @Summary List value change requests
// @Tags admin
// @Produce json
// @Param status query string false "Status filter: pending (default), approved, rejected or all"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/value-requests [get]
func HandleListValueRequests(svc review.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("status")
		if raw == "" {
			raw = string(domain.StatusPending)
		}

		var status domain.RequestStatus
		if raw != "all" {
			status = domain.RequestStatus(raw)
		}

		requests, err := svc.ListAll(r.Context(), status)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: requests})
	}
}

type ReviewDecisionRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// HandleApproveValueRequest settles a pending request and applies it
// @Summary Approve value change request
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Request id"
// @Param request body ReviewDecisionRequest false "Review notes"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/admin/value-requests/{id}/approve [post]
func HandleApproveValueRequest(svc review.Service) http.HandlerFunc {
	return reviewDecisionHandler(svc, domain.StatusApproved)
}

// HandleRejectValueRequest settles a pending request without applying it
// @Summary Reject value change request
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Request id"
// @Param request body ReviewDecisionRequest false "Review notes"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/admin/value-requests/{id}/reject [post]
func HandleRejectValueRequest(svc review.Service) http.HandlerFunc {
	return reviewDecisionHandler(svc, domain.StatusRejected)
}

// reviewDecisionHandler is the shared approve/reject shape
func reviewDecisionHandler(svc review.Service, decision domain.RequestStatus) http.HandlerFunc {
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

		var req ReviewDecisionRequest
		if r.ContentLength > 0 {
			if err := DecodeAndValidateRequest(r, w, &req, "Review value request"); err != nil {
				return
			}
		}

		var request *domain.ValueChangeRequest
		var err error
		var message string
		if decision == domain.StatusApproved {
			request, err = svc.Approve(r.Context(), id, user.ID, req.Notes)
			message = "Request approved and item value updated"
		} else {
			request, err = svc.Reject(r.Context(), id, user.ID, req.Notes)
			message = "Request rejected"
		}
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to review value request", "error", err, "request_id", id, "decision", decision)
			respondServiceError(w, err)
			return
		}

		metrics.ValueRequestsSettled.WithLabelValues(string(decision)).Inc()
		respondJSON(w, http.StatusOK, DataResponse{Message: message, Data: request})
	}
}

type EditValueRequestRequest struct {
	Status string `json:"status" validate:"required,reqstatus"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// HandleEditValueRequest is the administrative direct status edit
// @Summary Edit value change request
// @Description Rewrite a request's status regardless of its current state
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Request id"
// @Param request body EditValueRequestRequest true "New status"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/value-requests/{id} [put]
func HandleEditValueRequest(svc review.Service) http.HandlerFunc {
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

		var req EditValueRequestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Edit value request"); err != nil {
			return
		}

		request, err := svc.SetStatus(r.Context(), id, domain.RequestStatus(req.Status), user.ID, req.Notes)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to edit value request", "error", err, "request_id", id)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: "Request updated", Data: request})
	}
}
