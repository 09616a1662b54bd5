package main

import (
	"context"
	"log"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"conflive/internal/adapter/api"
	"conflive/internal/adapter/api/handler"
	"conflive/internal/adapter/api/router"
	"conflive/internal/adapter/repository"
	"conflive/internal/infrastructure/stream"
	"conflive/internal/infrastructure/websocket"
	"conflive/internal/usecase"
	"conflive/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	// Service account from environment variable (production) or file path
	// (local development).
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	contentRepo := repository.NewFirestoreContentRepository(firestoreClient)
	contentUseCase := usecase.NewContentUseCase(contentRepo)

	transport := stream.NewClient(cfg.TranslationAPIBase, cfg.TranslationWSURL)
	translationUseCase := usecase.NewLiveTranslationUseCase(
		transport,
		cfg.RoomID,
		cfg.DefaultRoomTitle,
		cfg.DefaultLocale,
		cfg.RoomPageBase,
		cfg.MaxSessions,
	)
	defer translationUseCase.Shutdown()

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	healthHandler := handler.NewHealthHandler(translationUseCase)
	contentHandler := handler.NewContentHandler(contentUseCase, cfg.DefaultLocale)
	translationHandler := handler.NewTranslationHandler(translationUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, translationUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e, healthHandler, contentHandler, translationHandler, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
