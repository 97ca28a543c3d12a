package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api"
	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/handler"
	apimiddleware "github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/middleware"
	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/api/router"
	"github.com/ShreyasChakki/Servon-sub001/internal/adapter/repository"
	"github.com/ShreyasChakki/Servon-sub001/internal/infrastructure/firebase"
	"github.com/ShreyasChakki/Servon-sub001/internal/infrastructure/storage"
	"github.com/ShreyasChakki/Servon-sub001/internal/infrastructure/websocket"
	"github.com/ShreyasChakki/Servon-sub001/internal/usecase"
	"github.com/ShreyasChakki/Servon-sub001/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			log.Fatalf("FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH is required")
		}
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	serviceRequestRepo := repository.NewFirestoreServiceRequestRepository(firestoreClient)
	quotationRepo := repository.NewFirestoreQuotationRepository(firestoreClient)
	connectionRepo := repository.NewFirestoreConnectionRepository(firestoreClient)
	advertisementRepo := repository.NewFirestoreAdvertisementRepository(firestoreClient)
	walletRepo := repository.NewFirestoreWalletRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	walletUseCase := usecase.NewWalletUseCase(walletRepo)
	conversationUseCase := usecase.NewConversationUseCase(messageRepo, userRepo, quotationRepo, connectionRepo, advertisementRepo, wsManager)
	serviceRequestUseCase := usecase.NewServiceRequestUseCase(serviceRequestRepo, userRepo)
	quotationUseCase := usecase.NewQuotationUseCase(quotationRepo, serviceRequestRepo, userRepo, walletUseCase, conversationUseCase, cfg.QuotationFee)
	connectionUseCase := usecase.NewConnectionUseCase(connectionRepo, userRepo, conversationUseCase)
	advertisementUseCase := usecase.NewAdvertisementUseCase(advertisementRepo, userRepo, walletUseCase, conversationUseCase, storageClient, cfg.AdDailyRate)
	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, userRepo, walletUseCase)
	adminUseCase := usecase.NewAdminUseCase(userRepo)

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(apimiddleware.GeneralRateLimit())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	handlers := router.Handlers{
		Auth:           handler.NewAuthHandler(authUseCase),
		Conversation:   handler.NewConversationHandler(conversationUseCase),
		Message:        handler.NewMessageHandler(conversationUseCase),
		WebSocket:      handler.NewWebSocketHandler(wsManager, conversationUseCase, authMiddleware),
		ServiceRequest: handler.NewServiceRequestHandler(serviceRequestUseCase),
		Quotation:      handler.NewQuotationHandler(quotationUseCase),
		Connection:     handler.NewConnectionHandler(connectionUseCase),
		Advertisement:  handler.NewAdvertisementHandler(advertisementUseCase),
		Wallet:         handler.NewWalletHandler(walletUseCase),
		Admin:          handler.NewAdminHandler(adminUseCase, conversationUseCase),
		Health:         handler.NewHealthHandler(),
	}

	router.Setup(e, handlers, authMiddleware, adminMiddleware)

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
