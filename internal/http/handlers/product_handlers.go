package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shubham23mamgain/bringit/domain"
)

// ProductHandlers serves the product catalog
type ProductHandlers struct {
	svc domain.ProductService
}

// NewProductHandlers creates new product handlers
func NewProductHandlers(svc domain.ProductService) *ProductHandlers {
	return &ProductHandlers{svc: svc}
}

// CreateProductRequest is the body of a product creation
type CreateProductRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Category    string  `json:"category" binding:"required"`
	Brand       string  `json:"brand" binding:"required"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
	Color       string  `json:"color" binding:"required"`
}

// UpdateProductRequest carries the fields to change; nil ones are kept
type UpdateProductRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price" binding:"omitempty,gte=0"`
	Category     *string  `json:"category"`
	Brand        *string  `json:"brand"`
	Quantity     *int     `json:"quantity" binding:"omitempty,gte=0"`
	Sold         *int     `json:"sold" binding:"omitempty,gte=0"`
	Color        *string  `json:"color"`
	TotalRatings *int     `json:"totalRatings" binding:"omitempty,gte=0"`
}

// Fields returns the set fields keyed by column
func (r UpdateProductRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Brand != nil {
		fields["brand"] = *r.Brand
	}
	if r.Quantity != nil {
		fields["quantity"] = *r.Quantity
	}
	if r.Sold != nil {
		fields["sold"] = *r.Sold
	}
	if r.Color != nil {
		fields["color"] = *r.Color
	}
	if r.TotalRatings != nil {
		fields["total_ratings"] = *r.TotalRatings
	}
	return fields
}

// Create adds a product
func (h *ProductHandlers) Create(c *gin.Context) {
	var req CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.svc.Create(c.Request.Context(), &domain.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Quantity:    req.Quantity,
		Color:       req.Color,
	})
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "Product created successfully", product)
}

// Get returns one product
func (h *ProductHandlers) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	product, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Product fetched successfully", product)
}

// List runs the product query builder over the request's query string
func (h *ProductHandlers) List(c *gin.Context) {
	q, err := ParseProductQuery(c.Request.URL.Query())
	if err != nil {
		WriteError(c, err)
		return
	}
	products, err := h.svc.Query(c.Request.Context(), q)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "All Products Fetched Successfully", products)
}

// Update changes a product
func (h *ProductHandlers) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.svc.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Product updated successfully", product)
}

// Delete removes a product
func (h *ProductHandlers) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	product, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Product deleted successfully", product)
}
