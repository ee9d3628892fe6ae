package member

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jiyun-dev/wecal/internal/domain"
	"github.com/jiyun-dev/wecal/pkg/middleware"
	"github.com/jiyun-dev/wecal/pkg/response"
	"github.com/jiyun-dev/wecal/pkg/validate"
)

// Handler handles HTTP requests for member operations
type Handler struct {
	service *Service
}

// NewHandler creates a new member handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for member endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.GetMe)
	r.Patch("/me", h.UpdateMe)
	r.Delete("/me", h.DeleteMe)

	return r
}

// GetMe handles GET /members/me
// @Summary      Get my profile
// @Description  Get the authenticated member's profile
// @Tags         members
// @Produce      json
// @Success      200 {object} response.APIResponse{data=MemberResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /members/me [get]
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	m, err := h.service.GetMe(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get member")
		return
	}

	response.JSON(w, http.StatusOK, m.ToResponse())
}

// UpdateMe handles PATCH /members/me
// @Summary      Update my profile
// @Description  Partially update nickname or profile image
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request body UpdateMemberRequest true "Profile update request"
// @Success      200 {object} response.APIResponse{data=MemberResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /members/me [patch]
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	m, err := h.service.UpdateMe(r.Context(), memberID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, domain.ErrValidation):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to update member")
		}
		return
	}

	response.JSON(w, http.StatusOK, m.ToResponse())
}

// DeleteMe handles DELETE /members/me
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteMe(r.Context(), memberID); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete member")
		return
	}

	response.NoContent(w)
}
