package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/rental-management-backend/config"
	"github.com/sharath018/rental-management-backend/database"
	"github.com/sharath018/rental-management-backend/internal/rent"
	"github.com/sharath018/rental-management-backend/routes"
	"github.com/sharath018/rental-management-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	log.Println("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("DB migration failed: %v", err)
	}

	storage, err := utils.NewLocalStorage(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		log.Fatalf("upload storage init failed: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.MaxMultipartMemory = 16 << 20

	rentSvc := routes.Setup(r, db, cfg, storage)
	rent.StartScheduler(rentSvc)

	log.Printf("Server listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
