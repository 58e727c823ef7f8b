package api

import (
	"errors"
	"net/http"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// ClaimsHandler handles the claim workflow: public submission plus the admin
// verify/reject/return transitions.
type ClaimsHandler struct {
	Store *store.Store
}

type claimRequest struct {
	ClaimerName   string `json:"claimerName"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Description   string `json:"description"`
}

// Submit handles POST /api/items/{id}/claim.
func (h *ClaimsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ClaimerName == "" || req.ContactNumber == "" || req.Description == "" {
		jsonError(w, http.StatusBadRequest, "name, contact number, and description required")
		return
	}

	item, err := h.Store.SubmitClaim(r.Context(), r.PathValue("id"), model.ClaimRequest{
		ClaimerName:   req.ClaimerName,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Description:   req.Description,
	})
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Verify handles POST /api/items/{id}/verify.
func (h *ClaimsHandler) Verify(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.VerifyClaim(r.Context(), r.PathValue("id"))
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Reject handles POST /api/items/{id}/reject: the claim is cleared and the
// item returns to the gallery as found.
func (h *ClaimsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.RejectClaim(r.Context(), r.PathValue("id"))
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Return handles POST /api/items/{id}/return: the verified item was handed
// back to its owner.
func (h *ClaimsHandler) Return(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.MarkReturned(r.Context(), r.PathValue("id"))
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, store.ErrInvalidTransition):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
