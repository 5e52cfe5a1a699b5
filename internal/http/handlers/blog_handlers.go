package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shubham23mamgain/bringit/domain"
)

// BlogHandlers serves blogs; writes go through the shared catalog handlers
type BlogHandlers struct {
	*CatalogHandlers[domain.Blog]
	svc domain.BlogService
}

// NewBlogHandlers creates new blog handlers
func NewBlogHandlers(repo domain.BlogRepository, svc domain.BlogService) *BlogHandlers {
	return &BlogHandlers{
		CatalogHandlers: NewCatalogHandlers[domain.Blog](repo, BlogCodec()),
		svc:             svc,
	}
}

// ReactionRequest names the blog being reacted to
type ReactionRequest struct {
	BlogID string `json:"blogId" binding:"required"`
}

// List returns every blog with reaction counts
func (h *BlogHandlers) List(c *gin.Context) {
	blogs, err := h.svc.List(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	if blogs == nil {
		blogs = []domain.Blog{}
	}
	Respond(c, http.StatusOK, "Blogs fetched successfully", blogs)
}

// Get returns one blog and counts the view
func (h *BlogHandlers) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	blog, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Blog fetched successfully", blog)
}

// Like toggles the user's like
func (h *BlogHandlers) Like(c *gin.Context) {
	h.react(c, h.svc.Like, "Blog like updated")
}

// Dislike toggles the user's dislike
func (h *BlogHandlers) Dislike(c *gin.Context) {
	h.react(c, h.svc.Dislike, "Blog dislike updated")
}

func (h *BlogHandlers) react(c *gin.Context, apply func(ctx context.Context, blogID, userID string) (*domain.Blog, error), message string) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req ReactionRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := domain.ValidateID(req.BlogID); err != nil {
		WriteError(c, err)
		return
	}
	blog, err := apply(c.Request.Context(), req.BlogID, user.ID)
	if err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, message, blog)
}
