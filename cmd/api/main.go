package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/yigit/curricula/internal/app/services"
	"github.com/yigit/curricula/internal/bootstrap"
	"github.com/yigit/curricula/internal/pkg/auth"
	"github.com/yigit/curricula/internal/pkg/logger"
	"github.com/yigit/curricula/internal/server"
)

// @title Curricula API
// @version 1.0
// @description API for editing degree programmes, their courses and course prerequisites
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@curricula.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Commands returning cli.Exit set their own status inside RunContext.
	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "curricula",
		Usage:   "curriculum editor backend",
		Version: bootstrap.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				Value:   "configs/config.yaml",
				EnvVars: []string{"CURRICULA_CONFIG"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations and exit",
				Action: migrate,
			},
			{
				Name:  "audit",
				Usage: "re-check every stored prerequisite graph and print a JSON report",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:  "programme",
						Usage: "audit a single programme id",
					},
					&cli.BoolFlag{
						Name:  "fail-on-issues",
						Usage: "exit with status 2 when any issue is found",
					},
				},
				Action: audit,
			},
			{
				Name:      "hash-password",
				Usage:     "print a bcrypt hash for admin.password_hash",
				ArgsUsage: "[password]",
				Action:    hashPassword,
			},
		},
	}
}

func serve(c *cli.Context) error {
	srv, err := server.NewServer(c.Context, c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Run(c.Context); err != nil {
		return err
	}

	logger.Info().Msg("Application finished gracefully.")
	return nil
}

func migrate(c *cli.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return err
	}

	database, err := bootstrap.SetupDatabase(c.Context, cfg, lgr)
	if err != nil {
		return err
	}
	database.Close()
	return nil
}

// openAuditDatabase connects for the read-only audit; it never migrates.
var openAuditDatabase = bootstrap.ConnectDatabase

func audit(c *cli.Context) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return err
	}
	// The report goes to stdout, so keep the logs out of it.
	logger.Configure(logger.Config{Level: logger.LogLevel(strings.ToLower(cfg.Logging.Level)), Output: os.Stderr})
	lgr = logger.Get()

	database, err := openAuditDatabase(c.Context, cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	deps := bootstrap.BuildServices(cfg, database, nil, lgr)

	var reports []services.AuditReport
	if id := c.Int64("programme"); id != 0 {
		report, err := deps.AuditService.AuditProgramme(c.Context, id)
		if err != nil {
			return err
		}
		reports = []services.AuditReport{report}
	} else {
		reports, err = deps.AuditService.AuditAll(c.Context)
		if err != nil {
			return err
		}
	}

	if err := writeReports(c.App.Writer, reports); err != nil {
		return err
	}

	if c.Bool("fail-on-issues") && countIssues(reports) > 0 {
		return cli.Exit("", 2)
	}
	return nil
}

func writeReports(w io.Writer, reports []services.AuditReport) error {
	if reports == nil {
		reports = []services.AuditReport{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func countIssues(reports []services.AuditReport) int {
	total := 0
	for _, r := range reports {
		total += len(r.Issues)
	}
	return total
}

func hashPassword(c *cli.Context) error {
	password := c.Args().First()
	if password == "" {
		line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return cli.Exit("password must not be empty", 1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, hash)
	return err
}
