package group

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jiyun-dev/wecal/internal/domain"
	"github.com/jiyun-dev/wecal/pkg/middleware"
	"github.com/jiyun-dev/wecal/pkg/response"
	"github.com/jiyun-dev/wecal/pkg/validate"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListMine)
	r.Post("/join", h.Join)
	r.Get("/{id}", h.GetByID)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/invite-code", h.GenerateInviteCode)

	// Member management
	r.Get("/{id}/members", h.ListMembers)
	r.Delete("/{id}/members/me", h.Leave)
	r.Patch("/{id}/members/{memberId}", h.UpdateMember)
	r.Delete("/{id}/members/{memberId}", h.RemoveMember)

	return r
}

// Create handles POST /groups
// @Summary      Create a new group
// @Description  Create a calendar group and become its owner
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	summary, err := h.service.Create(r.Context(), callerID, &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, summary.ToResponse())
}

// ListMine handles GET /groups
// @Summary      List my groups
// @Description  Get every group the authenticated member belongs to
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]GroupResponse}
// @Router       /groups [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	summaries, err := h.service.ListMine(r.Context(), callerID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	groupResponses := make([]*GroupResponse, len(summaries))
	for i, s := range summaries {
		groupResponses[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusOK, groupResponses)
}

// GetByID handles GET /groups/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	callerID, groupID, ok := h.callerAndGroup(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Get(r.Context(), callerID, groupID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, summary.ToResponse())
}

// Update handles PATCH /groups/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, groupID, ok := h.callerAndGroup(w, r)
	if !ok {
		return
	}

	var req UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	summary, err := h.service.Update(r.Context(), callerID, groupID, &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, summary.ToResponse())
}

// Delete handles DELETE /groups/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, groupID, ok := h.callerAndGroup(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), callerID, groupID); err != nil {
		h.respondError(w, err)
		return
	}

	response.NoContent(w)
}

// GenerateInviteCode handles POST /groups/{id}/invite-code
// @Summary      Generate invite code
// @Description  Issue a fresh 24h invite code, replacing any previous one
// @Tags         groups
// @Produce      json
// @Param        id path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=InviteCodeResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/invite-code [post]
func (h *Handler) GenerateInviteCode(w http.ResponseWriter, r *http.Request) {
	callerID, groupID, ok := h.callerAndGroup(w, r)
	if !ok {
		return
	}

	result, err := h.service.GenerateInviteCode(r.Context(), callerID, groupID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Join handles POST /groups/join
// @Summary      Join a group
// @Description  Join a group using a valid invite code
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body JoinGroupRequest true "Join request"
// @Success      201 {object} response.APIResponse{data=GroupMemberResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups/join [post]
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req JoinGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	m, err := h.service.Join(r.Context(), callerID, &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, m.ToResponse())
}

// ListMembers handles GET /groups/{id}/members
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	callerID, groupID, ok := h.callerAndGroup(w, r)
	if !ok {
		return
	}

	members, err := h.service.ListMembers(r.Context(), callerID, groupID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	memberResponses := make([]*GroupMemberResponse, len(members))
	for i, m := range members {
		memberResponses[i] = m.ToResponse()
	}

	response.JSON(w, http.StatusOK, memberResponses)
}

// UpdateMember handles PATCH /groups/{id}/members/{memberId}
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	callerID, groupID, ok := h.callerAndGroup(w, r)
	if !ok {
		return
	}

	targetMemberID, ok := h.targetMember(w, r)
	if !ok {
		return
	}

	var req UpdateGroupMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	m, err := h.service.UpdateMember(r.Context(), callerID, groupID, targetMemberID, &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, m.ToResponse())
}

// RemoveMember handles DELETE /groups/{id}/members/{memberId}
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	callerID, groupID, ok := h.callerAndGroup(w, r)
	if !ok {
		return
	}

	targetMemberID, ok := h.targetMember(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveMember(r.Context(), callerID, groupID, targetMemberID); err != nil {
		h.respondError(w, err)
		return
	}

	response.NoContent(w)
}

// Leave handles DELETE /groups/{id}/members/me
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	callerID, groupID, ok := h.callerAndGroup(w, r)
	if !ok {
		return
	}

	if err := h.service.Leave(r.Context(), callerID, groupID); err != nil {
		h.respondError(w, err)
		return
	}

	response.NoContent(w)
}

// callerAndGroup extracts the authenticated member ID and the {id} URL
// parameter, writing the error response itself when either is missing.
func (h *Handler) callerAndGroup(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	callerID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return 0, 0, false
	}

	raw, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return 0, 0, false
	}
	groupID, err := domain.NewGroupID(raw)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return 0, 0, false
	}

	return callerID, groupID.Int64(), true
}

// targetMember parses the {memberId} URL parameter, writing the error
// response itself when it is not a valid member ID.
func (h *Handler) targetMember(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw, err := strconv.ParseInt(chi.URLParam(r, "memberId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return 0, false
	}
	memberID, err := domain.NewMemberID(raw)
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return 0, false
	}
	return memberID.Int64(), true
}

// respondError maps service errors onto HTTP responses
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrGroupNotFound), errors.Is(err, ErrGroupMemberNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrAlreadyGroupMember):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrInsufficientPermission):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrMaxGroupLimitExceeded),
		errors.Is(err, ErrMaxMemberLimitExceeded),
		errors.Is(err, ErrInvalidInviteCode),
		errors.Is(err, ErrOwnerCannotLeave),
		errors.Is(err, ErrCannotRemoveOwner),
		errors.Is(err, domain.ErrValidation):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "Internal server error")
	}
}
