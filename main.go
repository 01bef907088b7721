package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"tagcat/config"
	"tagcat/controller"
	"tagcat/docs"
	"tagcat/parser"
	"tagcat/repository"
	"tagcat/service"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title           Tag Category API
// @version         1.0
// @description     Manages tag categories, the metadata schemas used to label sports event data.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the tag category API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	rootCmd := &cobra.Command{
		Use:           "tagcat",
		Short:         "Tag category management API",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          serveCmd.RunE,
	}
	rootCmd.AddCommand(serveCmd, newValidateCommand())
	return rootCmd
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a JSON or YAML tag category document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			inputs, err := parser.DecodeTagCategoryDocument(data)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for i, input := range inputs {
				category, err := parser.ValidateTagCategory(input)
				if err != nil {
					failed++
					fmt.Fprintf(out, "category %d: %v\n", i, err)
					continue
				}
				encoded, err := json.MarshalIndent(category, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "category %d: valid\n%s\n", i, encoded)
				for _, issue := range parser.Diagnose(category) {
					fmt.Fprintf(out, "  warning: %s\n", issue)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d categories are invalid", failed, len(inputs))
			}
			return nil
		},
	}
}

func serve(ctx context.Context) error {
	t := time.Now()
	cfg := config.Env()
	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := newStore(cfg)
	if err != nil {
		logger.Error("failed to initialize store", zap.Error(err))
		return err
	}
	tagCategoryService := service.NewTagCategoryService(store, newPublisher(cfg, logger), logger)
	defer func() {
		if err := tagCategoryService.Close(); err != nil {
			logger.Warn("failed to close change publisher", zap.Error(err))
		}
	}()
	if cfg.SeedSampleData {
		if err := tagCategoryService.SeedSampleData(); err != nil {
			logger.Error("failed to seed sample data", zap.Error(err))
			return err
		}
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	addLogger(r)
	addMetrics(r)
	addDocs(r)
	setCors(r, cfg)
	controller.SetRoutes(r, controller.Dependencies{
		Config:     cfg,
		Service:    tagCategoryService,
		CacheStore: persistence.NewInMemoryStore(time.Duration(cfg.CacheTTLSeconds) * time.Second),
		Logger:     logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server started",
			zap.String("addr", server.Addr),
			zap.String("storage", string(cfg.StorageBackend)),
			zap.Duration("startup", time.Since(t)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

func newStore(cfg *config.Config) (repository.TagCategoryStore, error) {
	if cfg.StorageBackend != config.StoragePostgres {
		return repository.NewMemoryTagCategoryRepository(), nil
	}
	db, err := config.InitDB(cfg, &repository.TagCategory{})
	if err != nil {
		return nil, err
	}
	return repository.NewTagCategoryRepository(db), nil
}

func newPublisher(cfg *config.Config, logger *zap.Logger) service.ChangePublisher {
	if cfg.KafkaBroker == "" {
		return service.NoopChangePublisher{}
	}
	writer, err := config.GetWriter(cfg)
	if err != nil {
		logger.Warn("change events disabled", zap.Error(err))
		return service.NoopChangePublisher{}
	}
	return service.NewKafkaChangePublisher(writer)
}

func addLogger(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/metrics"},
	}))
}

func addMetrics(r *gin.Engine) {
	p := ginprometheus.NewPrometheus("gin")
	idRe := regexp.MustCompile(`tag-categories/[^/]+`)
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		url := strings.Split(c.Request.URL.String(), "?")[0]
		url = idRe.ReplaceAllString(url, "tag-categories/?")
		return strings.TrimPrefix(url, "/api")
	}
	p.MetricsPath = "/api/metrics"
	p.Use(r)
}

func addDocs(r *gin.Engine) {
	docs.SwaggerInfo.BasePath = "/api"
	r.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

func setCors(r *gin.Engine, cfg *config.Config) {
	corsConfigGetOptions := cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	corsConfigOtherMethods := cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     []string{"POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	getOptions := cors.New(corsConfigGetOptions)
	otherMethods := cors.New(corsConfigOtherMethods)

	r.Use(func(c *gin.Context) {
		if c.Request.Method == "OPTIONS" {
			// the preflighted method decides which policy applies
			requestedMethod := c.GetHeader("Access-Control-Request-Method")
			if requestedMethod == "GET" || requestedMethod == "OPTIONS" {
				getOptions(c)
			} else {
				otherMethods(c)
			}
			c.AbortWithStatus(204)
			return
		}

		if c.Request.Method == "GET" {
			getOptions(c)
		} else {
			otherMethods(c)
		}
	})
}
