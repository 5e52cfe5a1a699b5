package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shubham23mamgain/bringit/domain"
)

// CartHandlers serves the authenticated user's cart
type CartHandlers struct {
	svc domain.CartService
}

// NewCartHandlers creates new cart handlers
func NewCartHandlers(svc domain.CartService) *CartHandlers {
	return &CartHandlers{svc: svc}
}

// CartLine is one requested product
type CartLine struct {
	ProductID string `json:"_id"`
	Count     int    `json:"count"`
	Color     string `json:"color"`
}

// CartRequest replaces the cart with the given lines
type CartRequest struct {
	Cart []CartLine `json:"cart"`
}

// Save prices and stores the cart
func (h *CartHandlers) Save(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req CartRequest
	if !bindJSON(c, &req) {
		return
	}
	items := make([]domain.CartItemInput, 0, len(req.Cart))
	for _, line := range req.Cart {
		items = append(items, domain.CartItemInput{ProductID: line.ProductID, Count: line.Count, Color: line.Color})
	}
	cart, err := h.svc.Save(c.Request.Context(), user.ID, items)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Cart saved successfully", cart)
}

// Get returns the cart
func (h *CartHandlers) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	cart, err := h.svc.Get(c.Request.Context(), user.ID)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Cart fetched successfully", cart)
}

// Empty deletes the cart
func (h *CartHandlers) Empty(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	cart, err := h.svc.Empty(c.Request.Context(), user.ID)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Cart emptied successfully", cart)
}
