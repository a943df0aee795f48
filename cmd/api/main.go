package main

import (
	"context"
	"os"
	"path/filepath"
	"sorta/cmd/internal/domain/events"
	"sorta/cmd/internal/domain/sqlite"
	"sorta/cmd/internal/domain/sqlite/repository"
	handler2 "sorta/cmd/internal/http/handler"
	"sorta/cmd/internal/media"
	"sorta/cmd/internal/seed"
	"sorta/cmd/internal/service"
	"sorta/cmd/internal/store"
	"sorta/cmd/internal/utils/uid"
	"sorta/cmd/internal/utils/validators"
	"sorta/cmd/internal/vault"
	"sorta/cmd/internal/widget"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/sorta/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)
	uid.Init(1)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}

	// Init SQLite
	db, err := sqlite.Init(filepath.Join(dataDir, "sorta.db"))
	if err != nil {
		panic(err)
	}

	// Durable media storage for attachments
	mediaStore, err := media.NewStore(filepath.Join(dataDir, "media"))
	if err != nil {
		panic(err)
	}

	// Change notifications: widget export listens for category changes
	bus := events.NewBus()
	widget.NewExporter(filepath.Join(dataDir, "widget-data.json")).Listen(bus)

	// Gettings repos
	noteRepo := repository.NewNoteRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	localStore, err := store.New(noteRepo, categoryRepo, mediaStore, bus)
	if err != nil {
		panic(err)
	}

	// First run: the category set is seeded here, never by the store
	if len(localStore.Categories()) == 0 {
		if err := localStore.ReplaceCategories(seed.DefaultCategories()); err != nil {
			panic(err)
		}
	}

	notionService := service.NewNotionService(vault.New(newSecretStore()))

	// Re-validate any stored credentials; invalid ones stay in the vault
	// until the user explicitly disconnects
	if userID := os.Getenv("SORTA_USER_ID"); userID != "" {
		if notionService.RestoreConnection(context.Background(), userID) {
			log.Info("Notion connection restored")
		}
	}
	localStore.SetSyncer(notionService)

	// Getting services
	noteService := service.NewNoteService(localStore, validate)
	categoryService := service.NewCategoryService(localStore, validate)
	mediaService := service.NewMediaService(mediaStore)

	// Gettings handler
	noteRoutes := handler2.NewNoteDefault(noteService)
	categoryRoutes := handler2.NewCategoryDefault(categoryService)
	mediaRoutes := handler2.NewMediaDefault(mediaService)
	notionRoutes := handler2.NewNotionDefault(notionService, validate)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("30M"))

	// Notes
	e.GET("/api/notes", noteRoutes.GetNotes)
	e.POST("/api/notes", noteRoutes.CreateNote)
	e.PATCH("/api/notes/:id", noteRoutes.UpdateNote)
	e.DELETE("/api/notes/:id", noteRoutes.DeleteNote)

	// Categories
	e.GET("/api/categories", categoryRoutes.GetCategories)
	e.PUT("/api/categories", categoryRoutes.ReplaceCategories)

	// Media attachments
	e.POST("/api/media", mediaRoutes.UploadMedia)
	e.DELETE("/api/media", mediaRoutes.DeleteMedia)

	// Notion connection
	e.POST("/api/notion/connect", notionRoutes.Connect)
	e.DELETE("/api/notion/connect", notionRoutes.Disconnect)
	e.GET("/api/notion/status", notionRoutes.Status)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":7070"); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
}

// newSecretStore picks the credential backend: SSM SecureStrings in
// production, process memory for local development.
func newSecretStore() vault.SecretStore {
	if os.Getenv("GO_ENV") != "production" {
		log.Warn("using in-memory secret store; notion credentials will not survive a restart")
		return vault.NewMemorySecretStore()
	}

	store, err := vault.NewSSMSecretStore(context.Background(), os.Getenv("AWS_SSM_REGION"))
	if err != nil {
		log.Fatalf("unable to init secret store, %v", err)
	}
	return store
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
