package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"go-smartshop/internal/auth"
	"go-smartshop/internal/chat"
	"go-smartshop/internal/config"
	"go-smartshop/internal/database"
	productEventPublisher "go-smartshop/internal/eventpublisher/product"
	"go-smartshop/internal/export"
	gpt "go-smartshop/internal/gpt"
	gptutils "go-smartshop/internal/gpt/utils"
	"go-smartshop/internal/logger"
	"go-smartshop/internal/metrics"
	"go-smartshop/internal/mirror"
	productRepository "go-smartshop/internal/repository/product"
	"go-smartshop/internal/store"
	"go-smartshop/internal/utils"

	"cloud.google.com/go/firestore"
	Firestore "firebase.google.com/go/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// App holds every long-lived component of a signed-in SmartShop process.
type App struct {
	Config    config.Config
	Auth      *auth.Service
	Session   auth.Session
	Metrics   metrics.Metrics
	Registry  *prometheus.Registry
	Store     *store.Store
	Mirror    *mirror.CloudMirror
	Publisher productEventPublisher.ProductPublisher
	Products  productRepository.ProductRepository
	Exporter  *export.Exporter
	Chat      *chat.Session

	firestoreClient *firestore.Client
	logCloser       io.Closer
}

func NewOrPanic(ctx context.Context, cnf config.Config) *App {
	logCloser, err := logger.Setup(cnf.Log)
	if err != nil {
		panic(err)
	}

	firebaseApp := createFirestoreAppOrPanic(ctx, cnf.Firebase)
	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		panic(err)
	}

	authService := auth.NewService(createAuthProviderOrPanic(ctx, cnf.Firebase))
	session := loginOrPanic(ctx, authService, cnf.Account)

	m := metrics.New()
	registry := prometheus.NewRegistry()
	if err := m.Register(registry); err != nil {
		panic(err)
	}

	s := store.New()
	cloudMirror := mirror.New(database.New(firestoreClient, cnf.WriteTimeoutSecond), s, session.UserId, m.MirrorOperations)
	publisher := productEventPublisher.New(m.DroppedEvents)

	return &App{
		Config:          cnf,
		Auth:            authService,
		Session:         session,
		Metrics:         m,
		Registry:        registry,
		Store:           s,
		Mirror:          cloudMirror,
		Publisher:       publisher,
		Products:        productRepository.New(s, cloudMirror, publisher),
		Exporter:        export.New(cnf.Export.Dir),
		Chat:            chat.NewSession(NewResponderOrPanic(cnf.GilasAI), cnf.TypingDelay),
		firestoreClient: firestoreClient,
		logCloser:       logCloser,
	}
}

// Close waits for background pushes, signs out and releases the clients.
func (a *App) Close() error {
	a.Products.Wait()
	a.Auth.Logout()

	return errors.Join(a.firestoreClient.Close(), a.logCloser.Close())
}

func createFirestoreAppOrPanic(ctx context.Context, cnf config.Firebase) *Firestore.App {
	FirestoreCreds, err := json.Marshal(cnf)
	if err != nil {
		panic(err)
	}

	sa := option.WithCredentialsJSON(FirestoreCreds)
	app, err := Firestore.NewApp(ctx, &Firestore.Config{ProjectID: cnf.ProjectId}, sa)
	if err != nil {
		panic(err)
	}
	return app
}

func createAuthProviderOrPanic(ctx context.Context, cnf config.Firebase) auth.Provider {
	provider, err := auth.NewIdentityToolkitProvider(ctx, cnf.WebApiKey)
	if err != nil {
		panic(err)
	}
	return provider
}

func loginOrPanic(ctx context.Context, authService *auth.Service, cnf config.Account) auth.Session {
	signIn := authService.Login
	if cnf.Register {
		signIn = authService.Register
	}

	session, err := signIn(ctx, cnf.Email, cnf.Password)
	if err != nil {
		panic(err)
	}
	return session
}

// NewResponderOrPanic returns the GPT backed responder when an endpoint is
// configured and the keyword responder otherwise.
func NewResponderOrPanic(cnf config.GilasAI) chat.Responder {
	if !cnf.Enabled() {
		log.Info().Msg("chat: no GPT endpoint configured, using keyword replies only")
		return chat.RuleResponder{}
	}

	tokenizer, err := gptutils.NewTokenizer()
	if err != nil {
		panic(err)
	}

	gptFactory, err := gpt.NewClientFactory(gpt.ClientConfig{
		ApiUrl:      cnf.ApiUrl,
		ApiKey:      cnf.ApiKey,
		Model:       cnf.Model,
		Temperature: utils.Float32ToPointer(0.1),
	})
	if err != nil {
		panic(err)
	}

	return chat.NewGPTResponder(gptFactory, tokenizer, cnf.MaxPromptTokens)
}
