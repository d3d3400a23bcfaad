package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orenolabs/academy-board/middleware"
	"github.com/orenolabs/academy-board/models"
	"github.com/orenolabs/academy-board/repository"
	"github.com/orenolabs/academy-board/services"
	"github.com/orenolabs/academy-board/utils"
)

// BoardController serves the FAQ and review boards: listings, detail pages,
// and every post/comment mutation.
type BoardController struct {
	listing   *services.Listing
	lifecycle *services.Lifecycle
	posts     repository.PostRepository
	comments  repository.CommentRepository
}

// NewBoardController creates a BoardController.
func NewBoardController(listing *services.Listing, lifecycle *services.Lifecycle, posts repository.PostRepository, comments repository.CommentRepository) *BoardController {
	return &BoardController{listing: listing, lifecycle: lifecycle, posts: posts, comments: comments}
}

// ListPosts returns one page of a board, pinned posts first for reviews.
func (b *BoardController) ListPosts(ctx *gin.Context) {
	board := ctx.Param("board")
	if !models.ValidBoard(board) {
		utils.Error(ctx, http.StatusNotFound, 40410, "unknown board")
		return
	}

	keyword := strings.TrimSpace(ctx.Query("keyword"))
	page := parsePage(ctx.Query("page"))

	// Cache keywordless pages only to avoid cache key explosion.
	cacheKey := fmt.Sprintf("cache:board:%s:posts:page=%d", board, page)
	if keyword == "" {
		if cached, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(200, "application/json", cached)
			return
		}
	}

	result, err := b.listing.List(board, keyword, page)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if keyword == "" {
		utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: result}, time.Hour)
	}
	utils.Success(ctx, result)
}

// GetPost returns a single post with author, attachments, and comments
// (oldest comment first).
func (b *BoardController) GetPost(ctx *gin.Context) {
	board := ctx.Param("board")
	if !models.ValidBoard(board) {
		utils.Error(ctx, http.StatusNotFound, 40410, "unknown board")
		return
	}
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid post id")
		return
	}

	cacheKey := fmt.Sprintf("cache:board:%s:post:%d", board, id)
	if cached, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", cached)
		return
	}

	post, err := b.posts.Get(board, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "could not find the post")
			return
		}
		if utils.Sugar != nil {
			utils.Sugar.Errorf("load post failed: %v", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load post")
		return
	}

	comments, err := b.comments.ListByPost(id)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("load comments failed: %v", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load comments")
		return
	}

	payload := gin.H{"post": post, "comments": comments}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// CreatePost accepts multipart form data: title, content, and for the review
// board up to five files of at most 50MB each.
func (b *BoardController) CreatePost(ctx *gin.Context) {
	board := ctx.Param("board")
	if !models.ValidBoard(board) {
		utils.Error(ctx, http.StatusNotFound, 40410, "unknown board")
		return
	}
	actor := middleware.CurrentProfile(ctx)

	title := ctx.PostForm("title")
	content := ctx.PostForm("content")

	var files []services.AttachmentUpload
	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["files"] {
			f, err := fh.Open()
			if err != nil {
				utils.Error(ctx, http.StatusBadRequest, 40012, "unreadable attachment")
				return
			}
			defer f.Close()
			files = append(files, services.AttachmentUpload{
				FileName:    fh.Filename,
				Size:        fh.Size,
				ContentType: fh.Header.Get("Content-Type"),
				Reader:      f,
			})
		}
	}

	post, err := b.lifecycle.CreatePost(actor, board, title, content, files)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:board:" + board + ":")
	utils.Success(ctx, gin.H{"post": post})
}

// UpdatePost edits a post's title and content.
func (b *BoardController) UpdatePost(ctx *gin.Context) {
	board := ctx.Param("board")
	if !models.ValidBoard(board) {
		utils.Error(ctx, http.StatusNotFound, 40410, "unknown board")
		return
	}
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid post id")
		return
	}

	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid request payload")
		return
	}

	post, err := b.lifecycle.UpdatePost(middleware.CurrentProfile(ctx), board, id, req.Title, req.Content)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:board:" + board + ":")
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post and cascades attachments and comments.
func (b *BoardController) DeletePost(ctx *gin.Context) {
	board := ctx.Param("board")
	if !models.ValidBoard(board) {
		utils.Error(ctx, http.StatusNotFound, 40410, "unknown board")
		return
	}
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid post id")
		return
	}

	if err := b.lifecycle.DeletePost(middleware.CurrentProfile(ctx), board, id); err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:board:" + board + ":")
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// TogglePin flips the pinned flag on a review post (admin only).
func (b *BoardController) TogglePin(ctx *gin.Context) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid post id")
		return
	}

	pinned, err := b.lifecycle.TogglePin(middleware.CurrentProfile(ctx), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:board:" + models.BoardReview + ":")
	utils.Success(ctx, gin.H{"is_pinned": pinned})
}

// CreateComment appends a comment to a post.
func (b *BoardController) CreateComment(ctx *gin.Context) {
	board := ctx.Param("board")
	if !models.ValidBoard(board) {
		utils.Error(ctx, http.StatusNotFound, 40410, "unknown board")
		return
	}
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid post id")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid request payload")
		return
	}

	comment, err := b.lifecycle.CreateComment(middleware.CurrentProfile(ctx), board, id, req.Content)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(fmt.Sprintf("cache:board:%s:post:%d", board, id))
	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment removes a comment; only its author may do so.
func (b *BoardController) DeleteComment(ctx *gin.Context) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40014, "invalid comment id")
		return
	}

	if err := b.lifecycle.DeleteComment(middleware.CurrentProfile(ctx), id); err != nil {
		respondServiceError(ctx, err)
		return
	}

	// The comment's board is not in the route; drop detail caches on both boards.
	utils.InvalidateByPrefix("cache:board:")
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}

func parsePage(pageStr string) int {
	page := 1
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	return page
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(n), nil
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Validation and authorization denials are not logged; store failures are.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.Error(ctx, http.StatusBadRequest, 40001, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40301, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, "could not find the requested content")
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorf("store failure: %v", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50001, "request failed, please try again")
	}
}
