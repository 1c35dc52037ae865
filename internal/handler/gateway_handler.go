package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vreblog/public_api/internal/cache"
	"github.com/vreblog/public_api/internal/middleware"
	"github.com/vreblog/public_api/internal/models"
	"github.com/vreblog/public_api/internal/repository"
	"github.com/vreblog/public_api/internal/utils"
)

// GatewayHandler serves every admitted public API request. Routing happens
// here rather than in the Gin router: the first path segment selects the
// resource, and anything unrecognized falls through to the metadata
// response rather than a 404 (see DESIGN.md).
type GatewayHandler struct {
	articleRepo   *repository.ArticleRepository
	categoryRepo  *repository.CategoryRepository
	categoryCache *cache.CategoryCache
}

// NewGatewayHandler constructs a GatewayHandler.
func NewGatewayHandler(articleRepo *repository.ArticleRepository, categoryRepo *repository.CategoryRepository, categoryCache *cache.CategoryCache) *GatewayHandler {
	return &GatewayHandler{
		articleRepo:   articleRepo,
		categoryRepo:  categoryRepo,
		categoryCache: categoryCache,
	}
}

// Handle dispatches an admitted GET request to the selected resource.
func (h *GatewayHandler) Handle(c *gin.Context) {
	resource, resourceID := splitResourcePath(c.Param("path"))

	switch {
	case resource == "articles" && resourceID != "":
		h.getArticle(c, resourceID)
	case resource == "articles":
		h.listArticles(c)
	case resource == "categories":
		h.listCategories(c)
	default:
		h.metadata(c)
	}
}

// splitResourcePath breaks the wildcard remainder into resource and id
// segments. Extra segments beyond the id are ignored.
func splitResourcePath(path string) (string, string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	resource := ""
	resourceID := ""
	if len(parts) > 0 {
		resource = parts[0]
	}
	if len(parts) > 1 {
		resourceID = parts[1]
	}
	return resource, resourceID
}

// listArticles handles GET /api/articles with pagination and filters.
func (h *GatewayHandler) listArticles(c *gin.Context) {
	filter := &repository.ArticleFilter{
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", repository.DefaultPageSize),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Tag:      c.Query("tag"),
	}
	filter.Normalize()

	articles, total, err := h.articleRepo.ListPublished(filter)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	// List items carry excerpts only; full content is for single fetch.
	items := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		items = append(items, a.ListItem())
	}

	utils.DataWithPagination(c, items, utils.NewPagination(filter.Page, filter.Limit, total))
}

// getArticle handles GET /api/articles/:id. Unpublished articles 404
// identically to missing ones so draft existence never leaks.
func (h *GatewayHandler) getArticle(c *gin.Context, id string) {
	article, err := h.articleRepo.GetPublishedByID(id)
	if err == sql.ErrNoRows {
		utils.Fail(c, http.StatusNotFound, "Article not found")
		return
	}
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.Data(c, article)
}

// listCategories handles GET /api/categories, alphabetical, cache-first.
func (h *GatewayHandler) listCategories(c *gin.Context) {
	ctx := c.Request.Context()
	if h.categoryCache != nil {
		if cached := h.categoryCache.Get(ctx); cached != nil {
			utils.Data(c, cached)
			return
		}
	}

	categories, err := h.categoryRepo.List()
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	if h.categoryCache != nil {
		h.categoryCache.Set(ctx, categories)
	}
	utils.Data(c, categories)
}

// metadata handles GET /api/ and every unrecognized resource path. The
// quota snapshot reflects the charge for this very request.
func (h *GatewayHandler) metadata(c *gin.Context) {
	key := middleware.GetAPIKey(c)

	c.JSON(http.StatusOK, gin.H{
		"name":        "VreBlog Public API",
		"version":     "1.0.0",
		"description": "Read-only API for accessing VreBlog articles and categories.",
		"endpoints": gin.H{
			"GET /articles": gin.H{
				"description": "List published articles",
				"params": gin.H{
					"page":     "Page number (default: 1)",
					"limit":    "Items per page (default: 10, max: 50)",
					"category": "Filter by category ID",
					"search":   "Search in article titles",
					"tag":      "Filter by tag",
				},
			},
			"GET /articles/:id": gin.H{"description": "Get single article by ID"},
			"GET /categories":   gin.H{"description": "List all categories"},
		},
		"rate_limit": gin.H{
			"limit":     key.DailyLimit,
			"used":      key.RequestsToday,
			"remaining": key.Remaining(),
			"reset":     "midnight UTC",
		},
		"docs": "See the API documentation page for examples.",
	})
}

// intQuery parses an integer query parameter, falling back to def when the
// parameter is absent or unparseable.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
