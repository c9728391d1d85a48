// File: cmd/serve.go
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"huddle/config"
	"huddle/database"
	availabilityRepoPkg "huddle/database/repository/availability"
	entryRepoPkg "huddle/database/repository/entry"
	memberRepoPkg "huddle/database/repository/member"
	synctokenRepoPkg "huddle/database/repository/synctoken"
	teamRepoPkg "huddle/database/repository/team"
	"huddle/handlers"
	"huddle/middleware"
	"huddle/routes"
	"huddle/services/availability"
	"huddle/services/brain"
	"huddle/services/relay"
	"huddle/services/team"
	"huddle/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

// stores bundles the repositories behind the services so the
// memory-mode and Mongo-backed boot paths produce one shape.
type stores struct {
	Members memberRepoPkg.MemberRepository
	Teams   teamRepoPkg.TeamRepository
	Reports availabilityRepoPkg.AvailabilityRepository
	Tokens  synctokenRepoPkg.SyncTokenRepository
	Entries entryRepoPkg.EntryRepository
}

func buildStores(logger *zap.Logger) stores {
	if config.AppConfig.MemoryMode || config.AppConfig.DatabaseURL == "" {
		// The cache getters key off this flag to skip Redis.
		config.AppConfig.MemoryMode = true
		logger.Warn("memory mode: all state is in-process and lost on restart")
		return stores{
			Members: memberRepoPkg.NewMemoryMemberRepo(),
			Teams:   teamRepoPkg.NewMemoryTeamRepo(),
			Reports: availabilityRepoPkg.NewMemoryAvailabilityRepo(),
			Tokens:  synctokenRepoPkg.NewMemorySyncTokenRepo(),
			Entries: entryRepoPkg.NewMemoryEntryRepo(),
		}
	}

	database.InitDB()
	utils.InitRedis()
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetTokenCacheClient(),
	}, database.MongoClient)
	return stores{
		Members: memberRepoPkg.NewMongoMemberRepo(),
		Teams:   teamRepoPkg.NewMongoTeamRepo(),
		Reports: availabilityRepoPkg.NewMongoAvailabilityRepo(),
		Tokens:  synctokenRepoPkg.NewRedisSyncTokenRepo(),
		Entries: entryRepoPkg.NewMongoEntryRepo(),
	}
}

func runServe() error {
	config.LoadConfig()
	logger := utils.GetLogger()

	st := buildStores(logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	teamService := &team.DefaultTeamService{
		Members: st.Members,
		Teams:   st.Teams,
	}

	relayService := &relay.DefaultRelayService{
		Transport: relay.NewHTTPTransport(),
	}

	availabilityService := availability.NewDefaultService(
		st.Teams, st.Members, st.Reports, st.Tokens, relayService,
	)

	brainService := &brain.DefaultBrainService{
		Teams:      st.Teams,
		Repo:       st.Entries,
		Fallback:   entryRepoPkg.NewMemoryEntryRepo(),
		Classifier: brain.NewClassifier(),
	}

	teamHandler := handlers.NewTeamHandler(teamService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	brainHandler := handlers.NewBrainHandler(brainService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		MemberRepo: st.Members,

		RegisterMemberHandler: teamHandler.RegisterMemberHandler,
		UpdateRelayKeyHandler: teamHandler.UpdateRelayKeyHandler,

		CreateTeamHandler:  teamHandler.CreateTeamHandler,
		PreviewTeamHandler: teamHandler.PreviewTeamHandler,
		JoinTeamHandler:    teamHandler.JoinTeamHandler,
		MyTeamsHandler:     teamHandler.MyTeamsHandler,
		TeamDetailHandler:  teamHandler.TeamDetailHandler,
		ListMembersHandler: teamHandler.ListMembersHandler,

		FindAvailabilityHandler: availabilityHandler.FindAvailabilityHandler,
		SyncCalendarHandler:     availabilityHandler.SyncCalendarHandler,
		BookMeetingHandler:      availabilityHandler.BookMeetingHandler,

		DumpHandler:    brainHandler.DumpHandler,
		QueryHandler:   brainHandler.QueryHandler,
		EntriesHandler: brainHandler.EntriesHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}
	logger.Sugar().Info("serve: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Sugar().Info("serve: server stopped gracefully")
	return nil
}
