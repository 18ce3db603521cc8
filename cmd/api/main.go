package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/Haitham314s/blog-api/internal/config"
	"github.com/Haitham314s/blog-api/internal/db"
	"github.com/Haitham314s/blog-api/internal/mail"
)

func main() {

	// Load configuration
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		slog.Error("JWT_SECRET must be set in prod")
		os.Exit(1)
	}

	// Connect to database FIRST
	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	if err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	slog.Info("connected to the database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Run(cfg.DatabaseURL()); err != nil {
		slog.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// Without an SMTP host, outgoing mail is logged instead of delivered.
	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer, err = mail.NewSMTPMailer(
			cfg.SMTPHost, cfg.SMTPPort,
			cfg.SMTPUsername, cfg.SMTPPassword,
			cfg.MailFrom, cfg.MailFromName,
		)
		if err != nil {
			slog.Error("mailer setup failed", "err", err)
			os.Exit(1)
		}
	} else {
		mailer = &mail.LogMailer{}
	}

	router := newRouter(database, cfg, mailer)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, router)
	} else {
		slog.Info("starting server", "addr", addr)
		err = http.ListenAndServe(addr, router)
	}
	if err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}
