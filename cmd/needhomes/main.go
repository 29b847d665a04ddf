package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/needhomes/needhomes-go/auth"
	"github.com/needhomes/needhomes-go/client"
	"github.com/needhomes/needhomes-go/internal/config"
	"github.com/needhomes/needhomes-go/kvstore"
	"github.com/needhomes/needhomes-go/properties"
	"github.com/needhomes/needhomes-go/session"
)

// Smoke client: logs in with env-provided credentials, lists the first page
// of properties, and logs out. Exercises the full session lifecycle against a
// real backend.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running client: %s\n", err)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()
	c := config.New()
	displayAppname(c.GetAppName())

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	kv, err := kvstore.NewSQLite(c.GetStoragePath())
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()

	store, err := session.NewStore(kv)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	api, err := client.New(c.GetBaseURL(), store,
		client.WithHTTPClient(&http.Client{Timeout: time.Duration(c.GetHTTPTimeoutSeconds()) * time.Second}),
		client.WithLogger(logger),
		client.WithNotifier(client.NotifierFunc(func(message string) {
			logger.Warn().Msg(message)
		})),
		client.WithNavigator(client.NavigatorFunc(func() {
			logger.Info().Msg("navigate to login")
		})),
	)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	ctx := context.Background()

	authService, err := auth.New(api, store, auth.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create auth service: %w", err)
	}

	if store.Session() == nil {
		email := config.GetEnv("NEEDHOMES_EMAIL", "")
		password := config.GetEnv("NEEDHOMES_PASSWORD", "")
		if email == "" || password == "" {
			return errors.New("no persisted session; set NEEDHOMES_EMAIL and NEEDHOMES_PASSWORD")
		}
		if _, err := authService.Login(ctx, email, password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	} else {
		logger.Info().Msg("reusing persisted session")
	}

	propertyService, err := properties.New(api)
	if err != nil {
		return fmt.Errorf("create property service: %w", err)
	}

	page, err := propertyService.List(ctx, 1, 10)
	if err != nil {
		return fmt.Errorf("list properties: %w", err)
	}
	for _, p := range page.Items {
		logger.Info().
			Str("id", p.ID).
			Str("title", p.Title).
			Str("location", p.Location).
			Int("available_units", p.AvailableUnits).
			Msg("property")
	}
	logger.Info().Int("total", page.Total).Msg("listing complete")

	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
