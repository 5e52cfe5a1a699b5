package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shubham23mamgain/bringit/domain"
)

// CatalogCodec turns request bodies into one catalog entity type
type CatalogCodec[T any] struct {
	Name   string
	Create func(c *gin.Context) (*T, error)
	Update func(c *gin.Context) (map[string]any, error)
}

// CatalogHandlers serves plain CRUD for a catalog entity
type CatalogHandlers[T any] struct {
	repo  domain.CatalogRepository[T]
	codec CatalogCodec[T]
}

// NewCatalogHandlers creates CRUD handlers over repo
func NewCatalogHandlers[T any](repo domain.CatalogRepository[T], codec CatalogCodec[T]) *CatalogHandlers[T] {
	return &CatalogHandlers[T]{repo: repo, codec: codec}
}

// Create stores a new entity
func (h *CatalogHandlers[T]) Create(c *gin.Context) {
	entity, err := h.codec.Create(c)
	if err != nil {
		WriteError(c, err)
		return
	}
	if err := h.repo.Create(c.Request.Context(), entity); err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusCreated, h.codec.Name+" created successfully", entity)
}

// Get returns one entity
func (h *CatalogHandlers[T]) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	entity, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, h.codec.Name+" fetched successfully", entity)
}

// List returns every entity
func (h *CatalogHandlers[T]) List(c *gin.Context) {
	entities, err := h.repo.List(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	if entities == nil {
		entities = []T{}
	}
	Respond(c, http.StatusOK, h.codec.Name+" list fetched successfully", entities)
}

// Update changes an entity
func (h *CatalogHandlers[T]) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	fields, err := h.codec.Update(c)
	if err != nil {
		WriteError(c, err)
		return
	}
	entity, err := h.repo.Update(c.Request.Context(), id, fields)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, h.codec.Name+" updated successfully", entity)
}

// Delete removes an entity
func (h *CatalogHandlers[T]) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	entity, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, h.codec.Name+" deleted successfully", entity)
}

// decodeJSON binds the body, reporting failures as validation errors
func decodeJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return bindError(err)
	}
	return nil
}

// TitleRequest is the body of entities that only carry a title
type TitleRequest struct {
	Title string `json:"title" binding:"required"`
}

func (r *TitleRequest) title() (string, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return "", &domain.ValidationError{Field: "title", Reason: "is required"}
	}
	return title, nil
}

func titleCodec[T any](name string, build func(title string) *T) CatalogCodec[T] {
	decode := func(c *gin.Context) (string, error) {
		var req TitleRequest
		if err := decodeJSON(c, &req); err != nil {
			return "", err
		}
		return req.title()
	}
	return CatalogCodec[T]{
		Name: name,
		Create: func(c *gin.Context) (*T, error) {
			title, err := decode(c)
			if err != nil {
				return nil, err
			}
			return build(title), nil
		},
		Update: func(c *gin.Context) (map[string]any, error) {
			title, err := decode(c)
			if err != nil {
				return nil, err
			}
			return map[string]any{"title": title}, nil
		},
	}
}

// ProductCategoryCodec handles /api/category bodies
func ProductCategoryCodec() CatalogCodec[domain.ProductCategory] {
	return titleCodec("Category", func(title string) *domain.ProductCategory {
		return &domain.ProductCategory{Title: title}
	})
}

// BlogCategoryCodec handles /api/blog-category bodies
func BlogCategoryCodec() CatalogCodec[domain.BlogCategory] {
	return titleCodec("Blog category", func(title string) *domain.BlogCategory {
		return &domain.BlogCategory{Title: title}
	})
}

// BrandCodec handles /api/brand bodies
func BrandCodec() CatalogCodec[domain.Brand] {
	return titleCodec("Brand", func(title string) *domain.Brand {
		return &domain.Brand{Title: title}
	})
}

// CouponRequest is the body of a coupon write; codes are stored upper-case
type CouponRequest struct {
	Name     *string    `json:"name"`
	Expiry   *time.Time `json:"expiry"`
	Discount *float64   `json:"discount" binding:"omitempty,gt=0,lte=100"`
}

func (r *CouponRequest) fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = strings.ToUpper(strings.TrimSpace(*r.Name))
	}
	if r.Expiry != nil {
		fields["expiry"] = r.Expiry.UTC()
	}
	if r.Discount != nil {
		fields["discount"] = *r.Discount
	}
	return fields
}

// CouponCodec handles /api/coupon bodies
func CouponCodec() CatalogCodec[domain.Coupon] {
	return CatalogCodec[domain.Coupon]{
		Name: "Coupon",
		Create: func(c *gin.Context) (*domain.Coupon, error) {
			var req CouponRequest
			if err := decodeJSON(c, &req); err != nil {
				return nil, err
			}
			switch {
			case req.Name == nil || strings.TrimSpace(*req.Name) == "":
				return nil, &domain.ValidationError{Field: "name", Reason: "is required"}
			case req.Expiry == nil:
				return nil, &domain.ValidationError{Field: "expiry", Reason: "is required"}
			case req.Discount == nil:
				return nil, &domain.ValidationError{Field: "discount", Reason: "is required"}
			}
			f := req.fields()
			return &domain.Coupon{
				Name:     f["name"].(string),
				Expiry:   f["expiry"].(time.Time),
				Discount: f["discount"].(float64),
			}, nil
		},
		Update: func(c *gin.Context) (map[string]any, error) {
			var req CouponRequest
			if err := decodeJSON(c, &req); err != nil {
				return nil, err
			}
			if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
				return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
			}
			return req.fields(), nil
		},
	}
}

// BlogRequest is the body of a blog write
type BlogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Author      *string `json:"author"`
}

func (r *BlogRequest) fields() map[string]any {
	fields := map[string]any{}
	for column, v := range map[string]*string{
		"title":       r.Title,
		"description": r.Description,
		"category":    r.Category,
		"author":      r.Author,
	} {
		if v != nil {
			fields[column] = strings.TrimSpace(*v)
		}
	}
	return fields
}

// BlogCodec handles /api/blog write bodies
func BlogCodec() CatalogCodec[domain.Blog] {
	return CatalogCodec[domain.Blog]{
		Name: "Blog",
		Create: func(c *gin.Context) (*domain.Blog, error) {
			var req BlogRequest
			if err := decodeJSON(c, &req); err != nil {
				return nil, err
			}
			f := req.fields()
			for _, required := range []string{"title", "description", "category"} {
				if s, _ := f[required].(string); s == "" {
					return nil, &domain.ValidationError{Field: required, Reason: "is required"}
				}
			}
			blog := &domain.Blog{
				Title:       f["title"].(string),
				Description: f["description"].(string),
				Category:    f["category"].(string),
				Author:      "Admin",
			}
			if s, _ := f["author"].(string); s != "" {
				blog.Author = s
			}
			return blog, nil
		},
		Update: func(c *gin.Context) (map[string]any, error) {
			var req BlogRequest
			if err := decodeJSON(c, &req); err != nil {
				return nil, err
			}
			f := req.fields()
			for _, required := range []string{"title", "description", "category"} {
				if s, ok := f[required].(string); ok && s == "" {
					return nil, &domain.ValidationError{Field: required, Reason: "must not be empty"}
				}
			}
			return f, nil
		},
	}
}
