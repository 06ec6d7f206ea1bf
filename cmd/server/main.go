package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"smartkitch-backend-go/internal/ai"
	"smartkitch-backend-go/internal/api"
	"smartkitch-backend-go/internal/config"
	"smartkitch-backend-go/internal/core"
	"smartkitch-backend-go/internal/db"
	"smartkitch-backend-go/internal/middleware"
)

func main() {
	// --- 1. Load local .env (development convenience; absent in deployment) ---
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	// --- 2. Initialize Logger (Zap) ---
	var zapLogger *zap.Logger
	var err error
	if strings.ToLower(os.Getenv("GIN_MODE")) == "release" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 3. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 4. Initialize Firebase Admin SDK (Firestore, Auth, Storage, Messaging) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirebase(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK initialized successfully.")

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	storageClient := db.GetStorageClient()
	messagingClient := db.GetMessagingClient()

	if firestoreClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firestore client is nil after initialization. Application cannot start.")
	}
	if firebaseAuthClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase Auth client is nil after initialization. Application cannot start.")
	}
	zapLogger.Info("Firestore and Firebase Auth clients retrieved successfully.")

	// --- 5. Initialize Gemini Client ---
	geminiClient, err := ai.NewGeminiClient(initCtx, appConfig.GeminiAPIKey, appConfig.GeminiModel, appConfig.GeminiVisionModel)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Gemini client", zap.Error(err))
	}
	defer geminiClient.Close()
	zapLogger.Info("Gemini client initialized successfully.", zap.String("model", appConfig.GeminiModel))

	// --- 6. Initialize Repositories ---
	inventoryRepo := db.NewFirestoreInventoryRepository(firestoreClient)
	shoppingRepo := db.NewFirestoreShoppingListRepository(firestoreClient)
	profileRepo := db.NewFirestoreProfileRepository(firestoreClient)
	recipeRepo := db.NewFirestoreSavedRecipeRepository(firestoreClient)
	imageStore := db.NewFirebaseImageStore(storageClient, appConfig.StorageBucket)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 7. Initialize Core Services ---
	notifier := core.NewExpiryNotifier(messagingClient, inventoryRepo, profileRepo, zapLogger)
	inventoryService := core.NewInventoryService(inventoryRepo, notifier)
	shoppingService := core.NewShoppingListService(shoppingRepo)
	profileService := core.NewProfileService(profileRepo, imageStore)
	recipeService := core.NewRecipeService(inventoryRepo, profileRepo, recipeRepo, geminiClient)
	scanService := core.NewScanService(geminiClient, inventoryRepo, notifier)
	accountService := core.NewAccountService(firebaseAuthClient, profileRepo)

	engine := core.NewSuggestionEngine(inventoryRepo, shoppingRepo, profileRepo, zapLogger)
	defer engine.Stop()
	zapLogger.Info("Core services initialized successfully.")

	// --- 8. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
		zapLogger.Info("Gin mode set to 'release'.")
	} else {
		gin.SetMode(gin.DebugMode)
		zapLogger.Info("Gin mode set to 'debug'.")
	}
	router := gin.New()
	zapLogger.Info("Gin engine created.")

	// --- 9. Apply Global Middleware (Order is important) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))

	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	// --- 10. Setup API Routes ---
	api.SetupRoutes(
		router,
		appConfig,
		zapLogger,
		inventoryService,
		shoppingService,
		profileService,
		recipeService,
		scanService,
		accountService,
		notifier,
		engine,
	)

	// --- 11. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 12. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	zapLogger.Info("Attempting graceful shutdown of HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
