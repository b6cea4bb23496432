package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rotomethiopia/internal/chapa"
	"rotomethiopia/internal/db"
	"rotomethiopia/internal/donation"
	"rotomethiopia/internal/server"
	"rotomethiopia/internal/storage"
	"rotomethiopia/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	// Only the web server talks to the payment gateway, so the credential
	// is required here rather than in loadConfig.
	if config.ChapaSecretKey == "" {
		return fmt.Errorf("set CHAPA_SECRET_KEY")
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsConfig)
	s3Client := s3.NewFromConfig(awsConfig)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	volunteersRepo := store.NewVolunteerRepository(pool)
	daysRepo := store.NewDayRepository(pool)
	interestsRepo := store.NewInterestRepository(pool)
	eventsRepo := store.NewEventRepository(pool)
	previousRepo := store.NewPreviousEventRepository(pool)
	contactsRepo := store.NewContactRepository(pool)
	paymentsRepo := store.NewPaymentRepository(pool)
	registrationsRepo := store.NewRegistrationRepository(pool)
	subscribersRepo := store.NewSubscriberRepository(pool)

	gateway := chapa.NewClient(config.ChapaBaseURL, config.ChapaSecretKey)
	donations := donation.NewFlow(paymentsRepo, gateway, config, logger)
	images := storage.NewImageStorage(s3Client, config.S3BucketName, config.S3PublicBaseURL)

	jwkCache, err := jwk.NewCache(context.Background(), httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initialize jwk cache: %w", err)
	}

	jwksURL := fmt.Sprintf("%s/.well-known/jwks.json", config.CognitoIssuerURL)

	err = jwkCache.Register(context.Background(), jwksURL)
	if err != nil {
		return fmt.Errorf("failed to register cognito jwk with cache: %w", err)
	}

	srv, err := server.New(
		config,
		logger,
		cognitoClient,
		volunteersRepo,
		daysRepo,
		interestsRepo,
		eventsRepo,
		previousRepo,
		contactsRepo,
		paymentsRepo,
		registrationsRepo,
		subscribersRepo,
		donations,
		images,
		jwkCache,
		jwksURL,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
