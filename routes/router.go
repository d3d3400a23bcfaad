package routes

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/orenolabs/academy-board/config"
	"github.com/orenolabs/academy-board/controllers"
	"github.com/orenolabs/academy-board/middleware"
	"github.com/orenolabs/academy-board/repository"
	"github.com/orenolabs/academy-board/services"
	"github.com/orenolabs/academy-board/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	storage, err := utils.NewStorage(cfg)
	if err != nil {
		log.Fatalf("blob storage init failed: %v", err)
	}

	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	listing := services.NewListing(postRepo)
	lifecycle := services.NewLifecycle(postRepo, commentRepo, attachmentRepo, storage, utils.Sugar)

	authController := controllers.NewAuthController(profileRepo, storage)
	boardController := controllers.NewBoardController(listing, lifecycle, postRepo, commentRepo)
	catalogController := controllers.NewCatalogController(catalogRepo)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(profileRepo), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(profileRepo), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(profileRepo), authController.UpdateProfile)
	authGroup.POST("/avatar", middleware.AuthRequired(profileRepo), authController.UploadAvatar)

	// Public board reads.
	boards := api.Group("/boards/:board")
	boards.GET("/posts", boardController.ListPosts)
	boards.GET("/posts/:id", boardController.GetPost)

	// Public catalog reads.
	api.GET("/academy/courses", catalogController.ListCourses)
	api.GET("/academy/courses/:id", catalogController.GetCourse)
	api.GET("/shop/books", catalogController.ListBooks)
	api.GET("/shop/books/:id", catalogController.GetBook)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(profileRepo), middleware.RateLimitMiddleware())

	protected.POST("/boards/:board/posts", boardController.CreatePost)
	protected.PUT("/boards/:board/posts/:id", boardController.UpdatePost)
	protected.DELETE("/boards/:board/posts/:id", boardController.DeletePost)
	protected.POST("/boards/:board/posts/:id/pin", boardController.TogglePin)
	protected.POST("/boards/:board/posts/:id/comments", boardController.CreateComment)
	protected.DELETE("/comments/:id", boardController.DeleteComment)

	protected.POST("/academy/courses/:id/bookmark", catalogController.ToggleBookmark)
	protected.GET("/academy/bookmarks", catalogController.ListBookmarks)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
