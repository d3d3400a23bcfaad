package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orenolabs/academy-board/middleware"
	"github.com/orenolabs/academy-board/repository"
	"github.com/orenolabs/academy-board/utils"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogController serves courses, books, and per-user bookmarks.
type CatalogController struct {
	catalog repository.CatalogRepository
}

// NewCatalogController creates a CatalogController.
func NewCatalogController(catalog repository.CatalogRepository) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// ListCourses returns a page of published courses. Keywordless pages are
// cached; filtered queries always hit the database.
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	page := parsePage(ctx.Query("page"))
	keyword := ctx.Query("keyword")

	cacheKey := ""
	if keyword == "" {
		cacheKey = fmt.Sprintf("cache:catalog:courses:page=%d", page)
		if cached, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	courses, total, err := c.catalog.ListCourses(keyword, (page-1)*catalogPageSize, catalogPageSize)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load courses")
		return
	}

	payload := gin.H{
		"items":       courses,
		"page":        page,
		"page_size":   catalogPageSize,
		"total":       total,
		"total_pages": totalPages(total, catalogPageSize),
	}
	if cacheKey != "" {
		utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, catalogCacheTTL)
	}
	utils.Success(ctx, payload)
}

// GetCourse returns a single course.
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid id")
		return
	}

	course, err := c.catalog.GetCourse(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "course not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load course")
		return
	}
	utils.Success(ctx, gin.H{"course": course})
}

// ListBooks returns a page of recommended books.
func (c *CatalogController) ListBooks(ctx *gin.Context) {
	page := parsePage(ctx.Query("page"))
	keyword := ctx.Query("keyword")

	cacheKey := ""
	if keyword == "" {
		cacheKey = fmt.Sprintf("cache:catalog:books:page=%d", page)
		if cached, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	books, total, err := c.catalog.ListBooks(keyword, (page-1)*catalogPageSize, catalogPageSize)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load books")
		return
	}

	payload := gin.H{
		"items":       books,
		"page":        page,
		"page_size":   catalogPageSize,
		"total":       total,
		"total_pages": totalPages(total, catalogPageSize),
	}
	if cacheKey != "" {
		utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, catalogCacheTTL)
	}
	utils.Success(ctx, payload)
}

// GetBook returns a single book.
func (c *CatalogController) GetBook(ctx *gin.Context) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid id")
		return
	}

	book, err := c.catalog.GetBook(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40421, "book not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load book")
		return
	}
	utils.Success(ctx, gin.H{"book": book})
}

// ToggleBookmark flips the bookmark state of a course for the current user
// and reports the resulting state.
func (c *CatalogController) ToggleBookmark(ctx *gin.Context) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid id")
		return
	}

	if _, err := c.catalog.GetCourse(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "course not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load course")
		return
	}

	actor := middleware.CurrentProfile(ctx)
	bookmarked, err := c.catalog.ToggleBookmark(actor.ID, id)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to toggle bookmark")
		return
	}
	utils.Success(ctx, gin.H{"bookmarked": bookmarked})
}

// ListBookmarks returns the current user's bookmarked courses.
func (c *CatalogController) ListBookmarks(ctx *gin.Context) {
	actor := middleware.CurrentProfile(ctx)
	bookmarks, err := c.catalog.ListBookmarks(actor.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to load bookmarks")
		return
	}
	utils.Success(ctx, gin.H{"items": bookmarks})
}

const catalogPageSize = 10

func totalPages(total int64, pageSize int) int64 {
	if total <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
