package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AshwinChaudhary21/InterviewChatbot/internal/ai"
	"github.com/AshwinChaudhary21/InterviewChatbot/internal/ai/gemini"
	"github.com/AshwinChaudhary21/InterviewChatbot/internal/ai/groq"
	"github.com/AshwinChaudhary21/InterviewChatbot/internal/logger"
	"github.com/AshwinChaudhary21/InterviewChatbot/internal/questions"
	"github.com/AshwinChaudhary21/InterviewChatbot/internal/secrets"
	"github.com/AshwinChaudhary21/InterviewChatbot/internal/server"
	"github.com/AshwinChaudhary21/InterviewChatbot/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the talentscout screening server",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address for the http server (default :8080)")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

// serve is the main command for the screening server.
func serve(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting talentscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	storeCfg := store.Config{}
	if config.Mongo != nil {
		storeCfg.URI = config.Mongo.URI
		storeCfg.Database = config.Mongo.Database
	}
	if storeCfg.URI == "" {
		storeCfg.URI = viper.GetString("mongo.uri")
	}

	candidates, err := store.Connect(ctx, storeCfg, logger)
	if err != nil {
		logger.Fatal("connecting to the document store",
			zap.Error(err),
			zap.String("hint", "set MONGO_URI or the 'mongo.uri' key in the configuration file"),
		)
	}
	defer func() {
		if err := candidates.Close(context.Background()); err != nil {
			logger.Warn("closing the document store", zap.Error(err))
		}
	}()

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the question generator", zap.Error(err))
	}

	maxLogLength := 0
	if config.AI != nil {
		maxLogLength = config.AI.MaxLogLength
	}

	service := questions.NewService(generator, logger, maxLogLength)

	listen := config.Listen
	if listen == "" {
		listen = viper.GetString("listen")
	}

	srv, err := server.New(server.Config{Listen: listen}, service, candidates, logger)
	if err != nil {
		logger.Fatal("building the server", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

func newGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Generator, error) {
	if cfg == nil {
		cfg = &AIConfig{}
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", "groq":
		var keyFile, model string
		if cfg.Groq != nil {
			keyFile = cfg.Groq.APIKeyFile
			model = cfg.Groq.Model
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "groq api key",
			File: keyFile,
			Env:  "GROQ_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.groq.api-key-file or GROQ_API_KEY)", err)
		}

		client, err := groq.NewClient(apiKey, model)
		if err != nil {
			return nil, err
		}

		logger.WithAIFields(log, "groq", client.Model()).Info("question generator ready")
		return client, nil

	case "gemini":
		var keyFile, model string
		if cfg.Gemini != nil {
			keyFile = cfg.Gemini.APIKeyFile
			model = cfg.Gemini.Model
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: keyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
		}

		generator, err := gemini.NewGenerator(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}

		logger.WithAIFields(log, "gemini", generator.Model()).Info("question generator ready")
		return generator, nil

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}
