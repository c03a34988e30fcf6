package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/buena/portfolio-service/internal/app"
	"github.com/buena/portfolio-service/internal/config"
	"github.com/buena/portfolio-service/internal/controllers"
	"github.com/buena/portfolio-service/internal/routes"
	"github.com/buena/portfolio-service/internal/services"
	"github.com/buena/portfolio-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize portfolio-service:", err)
	}
	defer application.Close()

	fileStore := services.NewFileStore(cfg.UploadsDir)

	openaiKey := cfg.OpenAIAPIKey
	if !cfg.LDFlag_ExtractionEnabled {
		openaiKey = ""
	}
	openaiSvc := services.NewOpenAIService(openaiKey)

	emailSvc := services.NewEmailService(
		cfg.SendGridAPIKey,
		cfg.OrganizationName,
		cfg.LDFlag_SendgridFromEmail,
		cfg.NotifyEmail,
		cfg.LDFlag_SendgridSandboxMode,
	)

	propertyService := services.NewPropertyService(application.DB, emailSvc)
	extractionService := services.NewExtractionService(fileStore, openaiSvc, cfg.ExtractionTimeout)
	documentService := services.NewDocumentService(application.DB, fileStore)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(context.Background(), application.DB, propertyService); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
	}

	propertiesController := controllers.NewPropertiesController(propertyService, extractionService)
	documentsController := controllers.NewDocumentsController(documentService)
	healthController := controllers.NewHealthController(application)

	router := mux.NewRouter()

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	// /properties/extract must be registered before /properties/{id}.
	router.HandleFunc(routes.PropertiesExtract, propertiesController.ExtractHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.PropertiesBase, propertiesController.CreatePropertyHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.PropertiesBase, propertiesController.ListPropertiesHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertyDocuments, documentsController.ListPropertyDocumentsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertyByID, propertiesController.GetPropertyHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertyByID, propertiesController.UpdatePropertyHandler).Methods(http.MethodPatch, http.MethodPut)
	router.HandleFunc(routes.PropertyByID, propertiesController.DeletePropertyHandler).Methods(http.MethodDelete)
	router.HandleFunc(routes.DocumentsBase, documentsController.UploadDocumentHandler).Methods(http.MethodPost)

	c := cron.New()
	_, cronErr := c.AddFunc("30 3 * * *", func() {
		if _, e := propertyService.PurgeStaleDrafts(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled draft purge failed")
		}
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule draft purge cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("portfolio-service failed to start:", err)
	}
}
