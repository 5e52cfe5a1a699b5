package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shubham23mamgain/bringit/domain"
)

// UserHandlers serves account administration and self-service profile routes
type UserHandlers struct {
	users    domain.UserRepository
	products domain.ProductService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(users domain.UserRepository, products domain.ProductService) *UserHandlers {
	return &UserHandlers{users: users, products: products}
}

// EditUserRequest carries the editable profile fields; empty ones are kept
type EditUserRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email" binding:"omitempty,email"`
	Mobile    string `json:"mobile"`
}

// AddressRequest carries a postal address
type AddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// WishlistRequest names the product to toggle
type WishlistRequest struct {
	ProductID string `json:"prodId" binding:"required"`
}

// List returns every user
func (h *UserHandlers) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	out := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	Respond(c, http.StatusOK, "Users fetched successfully", out)
}

// Get returns one user by id
func (h *UserHandlers) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "User fetched successfully", user.Public())
}

// Delete removes a user by id
func (h *UserHandlers) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "User deleted successfully", user.Public())
}

// Edit updates the authenticated user's profile
func (h *UserHandlers) Edit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req EditUserRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, domain.ProfileUpdate{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Mobile:    strings.TrimSpace(req.Mobile),
	})
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "User updated successfully", updated.Public())
}

// SaveAddress stores the authenticated user's address
func (h *UserHandlers) SaveAddress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req AddressRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.users.UpdateAddress(c.Request.Context(), user.ID, strings.TrimSpace(req.Address))
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Address saved successfully", updated.Public())
}

// Block marks a user as blocked
func (h *UserHandlers) Block(c *gin.Context) {
	h.setBlocked(c, true, "User blocked successfully")
}

// Unblock clears the blocked flag
func (h *UserHandlers) Unblock(c *gin.Context) {
	h.setBlocked(c, false, "User unblocked successfully")
}

func (h *UserHandlers) setBlocked(c *gin.Context, blocked bool, message string) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.users.SetBlocked(c.Request.Context(), id, blocked)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, message, user.Public())
}

// Wishlist returns the authenticated user's saved products
func (h *UserHandlers) Wishlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	products, err := h.users.Wishlist(c.Request.Context(), user.ID)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Wishlist fetched successfully", products)
}

// ToggleWishlist adds the product to the wishlist, or removes it when present
func (h *UserHandlers) ToggleWishlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req WishlistRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := domain.ValidateID(req.ProductID); err != nil {
		WriteError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.products.Get(ctx, req.ProductID); err != nil {
		WriteError(c, err)
		return
	}
	added, err := h.users.ToggleWishlist(ctx, user.ID, req.ProductID)
	if err != nil {
		WriteError(c, err)
		return
	}
	wishlist, err := h.users.Wishlist(ctx, user.ID)
	if err != nil {
		WriteError(c, err)
		return
	}

	message := "Product removed from wishlist"
	if added {
		message = "Product added to wishlist"
	}
	Respond(c, http.StatusOK, message, gin.H{"added": added, "wishlist": wishlist})
}
