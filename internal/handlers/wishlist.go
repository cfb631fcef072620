package handlers

import (
	"net/http"

	"party-package-store/internal/middleware"
	"party-package-store/internal/services"
)

// WishlistHandler handles the signed-in user's wishlist
type WishlistHandler struct {
	wishlistService *services.WishlistService
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

type wishlistAddRequest struct {
	EventID int `json:"eventId"`
}

// Add handles POST /api/wishlist
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req wishlistAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.wishlistService.Add(user.ID, req.EventID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// Remove handles DELETE /api/wishlist/{eventId}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := urlParamInt(r, "eventId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.wishlistService.Remove(user.ID, eventID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "removed"})
}

// List handles GET /api/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	entries, err := h.wishlistService.List(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
