package main

import (
	"context"
	"fmt"
	"log"

	"github.com/autoservice/garage-api/config"
	"github.com/autoservice/garage-api/models"
	"github.com/autoservice/garage-api/routes"
	"github.com/autoservice/garage-api/services"
	"github.com/autoservice/garage-api/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Garage API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := bootstrap(context.Background(), cfg); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	router, err := routes.SetupRouter(cfg)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s (schedule timezone %s)", port, cfg.ScheduleTimezone)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// bootstrap connects the database and installs the process-wide services
func bootstrap(ctx context.Context, cfg *config.Config) error {
	config.SetConfig(cfg)

	if err := config.ConnectDatabase(cfg); err != nil {
		return err
	}
	if err := config.GetDB().AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migration completed successfully")

	utils.UploadDir = cfg.UploadDir

	if client := config.NewRedisClient(cfg); client != nil {
		services.SetScheduleCache(services.NewRedisScheduleCache(client, cfg.ScheduleCacheTTL))
	} else {
		services.SetScheduleCache(nil)
	}

	if cfg.UsesS3() {
		s3Service, err := services.NewS3Service(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize S3: %w", err)
		}
		services.SetImageService(services.NewS3ImageService(s3Service))
		log.Printf("Car model images stored in S3 bucket %s", cfg.AWSS3Bucket)
	} else {
		services.SetImageService(services.NewLocalImageService(cfg.UploadDir))
		log.Printf("Car model images stored in %s", cfg.UploadDir)
	}

	return nil
}
