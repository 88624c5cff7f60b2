package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/AshwinChaudhary21/InterviewChatbot/internal/logger"
	"github.com/AshwinChaudhary21/InterviewChatbot/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	promptBack        = "back"
	defaultListLimit  = 50
	defaultLastAnswer = 5
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Browse screened candidates stored in the document store",
	Run: func(cmd *cobra.Command, _ []string) {
		candidates(cmd)
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)

	candidatesCmd.Flags().Int64P("limit", "n", defaultListLimit, "maximum number of candidates to list")
}

func candidates(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

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
		logger.Fatal("connecting to the document store", zap.Error(err))
	}
	defer func() {
		if err := candidates.Close(context.Background()); err != nil {
			logger.Warn("closing the document store", zap.Error(err))
		}
	}()

	limit, _ := cmd.Flags().GetInt64("limit")

	for {
		listed, err := candidates.List(ctx, limit)
		if err != nil {
			logger.Fatal("listing candidates", zap.Error(err))
		}

		if len(listed) == 0 {
			logger.Info("exiting", zap.String("reason", "no candidates stored yet"))
			return
		}

		items := make([]string, 0, len(listed)+1)
		for _, c := range listed {
			label := fmt.Sprintf("%s / %s / %s / %d answers",
				c.Email, c.Name, strings.Join(c.TechStack, ", "), len(c.Answers),
			)
			items = append(items, label)
		}

		prompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, promptBack),
		}

		_, selected, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if selected == promptBack {
			return
		}

		email := strings.Split(selected, " ")[0]

		candidate, err := candidates.GetWithLastAnswers(ctx, email, defaultLastAnswer)
		if err != nil {
			logger.Fatal("getting candidate", zap.Error(err), zap.String("email", email))
		}
		if candidate == nil {
			logger.Warn("candidate vanished between list and get", zap.String("email", email))
			continue
		}

		pretty, _ := json.MarshalIndent(candidate, "", "  ")
		fmt.Println(string(pretty))
	}
}
