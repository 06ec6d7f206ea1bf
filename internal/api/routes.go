package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartkitch-backend-go/internal/config"
	"smartkitch-backend-go/internal/core"
	"smartkitch-backend-go/internal/db"
	"smartkitch-backend-go/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers and middleware.
// Global middleware (Logging, Recovery, CORS) are applied to the `router` instance
// *before* this function is called, in `main.go`.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	inventoryService core.InventoryService,
	shoppingService core.ShoppingListService,
	profileService core.ProfileService,
	recipeService core.RecipeService,
	scanService core.ScanService,
	accountService core.AccountService,
	notifier core.ExpiryNotifier,
	engine *core.SuggestionEngine,
) {
	// Auth middleware requires the Firebase Auth client from db.InitFirebase().
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("CRITICAL_SETUP_ERROR: Firebase Auth client is not initialized. AuthMiddleware cannot be created, and routes will not be set up.")
		panic("Firebase Auth client is nil during route setup. Ensure db.InitFirebase() was called and succeeded.")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient)

	// --- Initialize Handlers ---
	userHandler := NewUserHandler(profileService, accountService, engine)
	authHandler := NewAuthHandler(accountService)
	inventoryHandler := NewInventoryHandler(inventoryService)
	shoppingHandler := NewShoppingHandler(shoppingService)
	recipeHandler := NewRecipeHandler(recipeService)
	scanHandler := NewScanHandler(scanService)
	notificationHandler := NewNotificationHandler(notifier)

	apiV1 := router.Group("/api/v1")
	{
		// --- User and Profile Endpoints ---
		usersGroup := apiV1.Group("/users", authMW.VerifyToken())
		{
			// Called after client-side sign-in to ensure the settings
			// document exists and the suggestion watcher is running.
			usersGroup.POST("/initialize", userHandler.InitializeUser)
			usersGroup.GET("/me", userHandler.GetProfile)
			usersGroup.PUT("/me", userHandler.SaveProfile)
			usersGroup.POST("/me/photo", userHandler.UploadPhoto)
			usersGroup.POST("/me/device-token", userHandler.RegisterDeviceToken)
			usersGroup.DELETE("/me", userHandler.DeleteAccount)
		}

		// --- Account Endpoints ---
		authGroup := apiV1.Group("/auth")
		{
			// Password reset is public: it must work for users who cannot sign in.
			authGroup.POST("/password-reset", authHandler.RequestPasswordReset)
			authGroup.POST("/verification-email", authMW.VerifyToken(), authHandler.SendVerificationEmail)
			authGroup.POST("/password", authMW.VerifyToken(), authHandler.ChangePassword)
			authGroup.GET("/providers", authMW.VerifyToken(), authHandler.ListProviders)
		}

		// --- Inventory Endpoints ---
		inventoryGroup := apiV1.Group("/inventory", authMW.VerifyToken())
		{
			inventoryGroup.GET("", inventoryHandler.ListItems)
			inventoryGroup.POST("", inventoryHandler.AddItem)
			inventoryGroup.PUT("/:itemId", inventoryHandler.UpdateItem)
			inventoryGroup.DELETE("/:itemId", inventoryHandler.DeleteItem)
		}

		// --- Shopping List Endpoints ---
		shoppingGroup := apiV1.Group("/shopping-list", authMW.VerifyToken())
		{
			shoppingGroup.GET("", shoppingHandler.ListItems)
			shoppingGroup.POST("", shoppingHandler.AddItem)
			shoppingGroup.GET("/share", shoppingHandler.Share)
			// The static "suggestions" segment must be registered before the
			// ":itemId" wildcard would otherwise shadow it.
			shoppingGroup.DELETE("/suggestions", shoppingHandler.ClearSuggestions)
			shoppingGroup.PUT("/:itemId", shoppingHandler.UpdateItem)
			shoppingGroup.DELETE("/:itemId", shoppingHandler.DeleteItem)
			shoppingGroup.PATCH("/:itemId/purchased", shoppingHandler.TogglePurchased)
		}

		// --- Recipe Endpoints ---
		recipesGroup := apiV1.Group("/recipes", authMW.VerifyToken())
		{
			recipesGroup.POST("/generate", recipeHandler.Generate)
			recipesGroup.POST("/waste-saver", recipeHandler.GenerateWasteSaver)
			recipesGroup.GET("/saved", recipeHandler.ListSaved)
			recipesGroup.POST("/saved", recipeHandler.Save)
			recipesGroup.DELETE("/saved/:recipeId", recipeHandler.DeleteSaved)
		}

		// --- Scan Endpoints ---
		scanGroup := apiV1.Group("/scan", authMW.VerifyToken())
		{
			scanGroup.POST("", scanHandler.Scan)
			scanGroup.POST("/confirm", scanHandler.Confirm)
		}

		// --- Notification Endpoints ---
		notificationsGroup := apiV1.Group("/notifications", authMW.VerifyToken())
		{
			notificationsGroup.POST("/expiry-check", notificationHandler.ExpiryCheck)
		}
	}

	// Public health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
