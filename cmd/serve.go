package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/levelup-labs/jobscout/internal/chat"
	"github.com/levelup-labs/jobscout/internal/logger"
	"github.com/levelup-labs/jobscout/internal/report"
	"github.com/levelup-labs/jobscout/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the jobscout web server",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", ":8080", "listen address")
	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobscout", zap.String("version", version))

	// Credentials are resolved up front: a missing key is a startup
	// failure, never a per-request one.
	searcher, err := newSearcher(config.Search, logger)
	if err != nil {
		logger.Fatal("configuring the search provider", zap.Error(err))
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("configuring the generation provider", zap.Error(err))
	}

	secret, err := sessionSecret(config.Session)
	if err != nil {
		logger.Fatal("configuring the session secret", zap.Error(err))
	}

	sessions, err := newSessionStore(ctx, config.Session)
	if err != nil {
		logger.Fatal("configuring the session store", zap.Error(err))
	}

	handler := &server.Handler{
		Pipeline: newPipeline(config, searcher, generator, logger),
		Sessions: sessions,
		Chat:     chat.NewOrchestrator(chat.NewStore(), generator, logger),
		Renderer: report.NewRenderer(nil),
		Cookies:  server.NewCookieManager(secret),
		Logger:   logger,
	}

	e := server.New(handler, logger)

	// viper merges the config key and the flag; the flag wins when set.
	addr := viper.GetString("listen")

	logger.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
