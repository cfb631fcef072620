package handlers

import (
	"fmt"
	"net/http"

	"party-package-store/internal/middleware"
	"party-package-store/internal/models"
	"party-package-store/internal/services"
)

const maxUploadSize = 10 << 20 // 10 MB

// AdminHandler handles the admin back office
type AdminHandler struct {
	catalogService *services.CatalogService
	userService    *services.UserService
	imageService   *services.ImageService
	orderRepo      services.OrderRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	catalogService *services.CatalogService,
	userService *services.UserService,
	imageService *services.ImageService,
	orderRepo services.OrderRepository,
) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
		userService:    userService,
		imageService:   imageService,
		orderRepo:      orderRepo,
	}
}

// CreateCategory handles POST /api/admin/categories
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	category, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /api/admin/categories/{id}
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.CategoryUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	category, err := h.catalogService.UpdateCategory(id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/admin/categories/{id}
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.catalogService.DeleteCategory(id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

// CreatePackage handles POST /api/admin/events
func (h *AdminHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req models.EventCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.catalogService.CreatePackage(&req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// UpdatePackage handles PUT /api/admin/events/{id}
func (h *AdminHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.EventUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.catalogService.UpdatePackage(id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// ListOrders handles GET /api/admin/orders
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", "50")
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := queryInt(r, "offset", "0")
	if offset < 0 {
		offset = 0
	}

	orders, err := h.orderRepo.List(limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

type deliveryStatusRequest struct {
	OrderID        int                   `json:"orderId"`
	DeliveryStatus models.DeliveryStatus `json:"delivery_status"`
}

// UpdateDeliveryStatus handles PUT /api/admin/orders
func (h *AdminHandler) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	var req deliveryStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.OrderID <= 0 || !models.ValidDeliveryStatus(req.DeliveryStatus) {
		writeError(w, fmt.Errorf("invalid delivery status update: %w", models.ErrInvalidInput))
		return
	}

	order, err := h.orderRepo.UpdateDeliveryStatus(req.OrderID, req.DeliveryStatus)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(queryInt(r, "limit", "50"), queryInt(r, "offset", "0"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// UpdateUser handles PUT /api/admin/users
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())

	var req models.UserAdminActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.userService.ApplyAdminAction(actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type uploadResponse struct {
	PublicURL string                      `json:"publicUrl"`
	Result    *services.ImageUploadResult `json:"result"`
}

// Upload handles POST /api/admin/upload, a multipart image upload stored
// in R2 with resized variants
func (h *AdminHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, fmt.Errorf("invalid multipart form: %w", models.ErrInvalidInput))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("file field is required: %w", models.ErrInvalidInput))
		return
	}
	defer file.Close()

	result, err := h.imageService.UploadImage(r.Context(), file, header.Filename)
	if err != nil {
		writeError(w, fmt.Errorf("upload failed: %w", models.ErrInvalidInput))
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		PublicURL: result.URL,
		Result:    result,
	})
}
