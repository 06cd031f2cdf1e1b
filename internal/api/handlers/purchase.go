package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/coursify/marketplace-api/internal/api/middleware"
	"github.com/coursify/marketplace-api/internal/service"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

type PurchaseRequest struct {
	CourseUUIDs []string `json:"courseUuids"`
}

type PurchaseResponse struct {
	PurchasedCount int `json:"purchasedCount"`
}

func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	courseIDs := make([]uuid.UUID, 0, len(req.CourseUUIDs))
	for _, raw := range req.CourseUUIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Invalid course id: "+raw, http.StatusBadRequest)
			return
		}
		courseIDs = append(courseIDs, id)
	}

	count, err := h.purchaseService.Purchase(r.Context(), user, courseIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PurchaseResponse{PurchasedCount: count})
}

func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	purchases, err := h.purchaseService.ListPurchases(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, purchases)
}
