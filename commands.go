package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"truthonly/factcheck"
	"truthonly/handlers"
	"truthonly/models"
	"truthonly/present"
	"truthonly/provision"
	"truthonly/validation"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := newServer(a)
		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", cfg.Server.Addr).Str("webhook", cfg.Webhook.URL).Msg("Starting server")
			errCh <- srv.Listen(cfg.Server.Addr)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		log.Info().Msg("Shutting down")
		return srv.ShutdownWithTimeout(10 * time.Second)
	},
}

func newServer(a *app) *fiber.App {
	srv := fiber.New(fiber.Config{
		AppName:               "truthonly",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	srv.Use(recover.New())
	srv.Use(fiberlogger.New(fiberlogger.Config{Output: log}))

	handlers.New(a.service, a.records, a.history, a.searches).SetupRoutes(srv)

	srv.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("TruthOnly API is running. Use /api/checks endpoints.")
	})
	return srv
}

var checkType string

var checkCmd = &cobra.Command{
	Use:   "check <url|text|image-path>",
	Short: "Verify one input and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := models.ParseInputType(checkType)
		if !ok {
			return fmt.Errorf("unknown input type %q", checkType)
		}

		a, err := newApp(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		form := validation.NewForm(validation.DefaultDebounce, nil)
		defer form.Close()
		form.Update(t, args[0])

		err = form.Submit(cmd.Context(), func(ctx context.Context, t models.InputType, raw string) error {
			var fileName string
			if t == models.InputImage {
				fileName = filepath.Base(raw)
			}
			out, err := a.service.Check(ctx, models.NewVerificationRequest(t, raw, fileName, time.Now()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), present.Outcome(out))
			return nil
		})
		if errors.Is(err, validation.ErrNotReady) {
			status := validation.Validate(t, args[0])
			if status == validation.StatusEmpty {
				return errors.New("input cannot be empty")
			}
			return errors.New(status.Message())
		}
		return err
	},
}

var clearHistory bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear recent checks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		if clearHistory {
			return a.history.Clear(cmd.Context())
		}
		fmt.Fprintln(cmd.OutOrStdout(), present.History(a.history.LoadAll(cmd.Context())))
		return nil
	},
}

var clearSearches bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Record a search and list matching suggestions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if clearSearches {
			return a.searches.Clear(ctx)
		}
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), present.List(a.searches.LoadAll(ctx), "No recent searches."))
			return nil
		}
		if err := a.searches.Record(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), present.List(a.searches.Suggest(ctx, args[0]), "No suggestions."))
		return nil
	},
}

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Import and activate the n8n workflows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") {
			dir = cfg.Provision.Dir
		}
		report := provision.New(cfg.Provision.BaseURL, log).Run(cmd.Context(), dir, provision.DefaultWorkflows)
		log.Info().
			Int("imported", len(report.Imported)).
			Int("existing", len(report.Existing)).
			Int("activated", len(report.Activated)).
			Int("failed", len(report.Failed)).
			Msg("Provisioning finished")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "truthonly %s (default webhook %s)\n", version, factcheck.DefaultWebhookURL)
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkType, "type", "t", "url", "input type: url, text or image")
	historyCmd.Flags().BoolVar(&clearHistory, "clear", false, "delete all recent checks")
	searchCmd.Flags().BoolVar(&clearSearches, "clear", false, "delete all recent searches")
	provisionCmd.Flags().String("dir", ".", "directory holding the workflow JSON files")
}
