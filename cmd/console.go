package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/levelup-labs/jobscout/internal/chat"
	"github.com/levelup-labs/jobscout/internal/logger"
	"github.com/levelup-labs/jobscout/internal/profile"
	"github.com/levelup-labs/jobscout/internal/report"
)

const (
	actionSavePDF = "Save as PDF"
	actionAsk     = "Ask the assistant"
	actionExit    = "Exit"

	pdfFilename = "job_details.pdf"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run a one-shot job search from the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		console(cmd)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func console(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	searcher, err := newSearcher(config.Search, logger)
	if err != nil {
		logger.Fatal("configuring the search provider", zap.Error(err))
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("configuring the generation provider", zap.Error(err))
	}

	prof, err := promptProfile()
	if err != nil {
		logger.Fatal("reading the profile", zap.Error(err))
	}

	pipeline := newPipeline(config, searcher, generator, logger)

	listings, err := pipeline.Run(ctx, prof)
	if err != nil {
		logger.Fatal("search failed", zap.Error(err))
	}

	if len(listings) == 0 {
		logger.Info("exiting", zap.String("reason", "no listings found"))
		return
	}

	for i, listing := range listings {
		fmt.Printf("\n%d. %s\n   %s\n%s\n", i+1, listing.Title, listing.URL, listing.Summary)
	}

	orchestrator := chat.NewOrchestrator(chat.NewStore(), generator, logger)

	prompt := promptui.Select{
		Label: "What next?",
		Items: []string{actionSavePDF, actionAsk, actionExit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		switch action {
		case actionSavePDF:
			data, err := report.NewRenderer(nil).Render(listings)
			if err != nil {
				logger.Fatal("rendering the pdf", zap.Error(err))
			}
			if err := os.WriteFile(pdfFilename, data, 0o644); err != nil {
				logger.Fatal("writing the pdf", zap.Error(err))
			}
			logger.Info("saved listings", zap.String("filename", pdfFilename))
		case actionAsk:
			question := promptui.Prompt{Label: "Your question"}
			text, err := question.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
			orchestrator.Submit(ctx, "console", text)
			messages := orchestrator.Store.Messages("console")
			if len(messages) > 0 {
				fmt.Printf("\n%s\n", messages[len(messages)-1].Text)
			}
		case actionExit:
			return
		}
	}
}

func promptProfile() (profile.Profile, error) {
	required := func(name string) func(string) error {
		return func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("%s is required", name)
			}
			return nil
		}
	}

	type field struct {
		label    string
		validate promptui.ValidateFunc
		target   *string
	}

	var prof profile.Profile
	fields := []field{
		{"Job Title", required("job title"), &prof.Title},
		{"Location", required("location"), &prof.Location},
		{"Age (optional)", nil, &prof.Age},
		{"Education", required("education"), &prof.Education},
		{"Years of Experience", required("experience"), &prof.Experience},
	}

	for _, f := range fields {
		prompt := promptui.Prompt{Label: f.label, Validate: f.validate}
		value, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return prof, fmt.Errorf("interrupted")
			}
			return prof, err
		}
		*f.target = value
	}

	return prof, nil
}
