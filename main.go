package main

import (
	"github.com/orenolabs/academy-board/config"
	"github.com/orenolabs/academy-board/models"
	"github.com/orenolabs/academy-board/routes"
	"github.com/orenolabs/academy-board/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.Profile{},
		&models.Post{},
		&models.Comment{},
		&models.Attachment{},
		&models.Course{},
		&models.Book{},
		&models.Bookmark{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
