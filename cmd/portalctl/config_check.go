package main

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"safetyportal/internal/config"
)

func init() {
	rootCmd.AddCommand(configCheckCmd)
}

// configCheckCmd загружает конфигурацию сервера из окружения и печатает итоговые значения
var configCheckCmd = &cobra.Command{
	Use:   "config-check",
	Short: "Validate server configuration from the environment",
	Long: `Load the server configuration the same way the server does and print it.

Exits with an error listing every invalid setting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		secret := "[not set]"
		if cfg.JWTSecret != "" {
			secret = "[set]"
		}

		printf(w, "Port:\t%s\n", cfg.Port)
		printf(w, "Database:\t%s\n", cfg.DatabasePath)
		printf(w, "Pool:\topen=%d idle=%d lifetime=%v\n", cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
		printf(w, "Log:\t%s (%s)\n", cfg.LogLevel, cfg.LogFormat)
		printf(w, "JWT secret:\t%s\n", secret)
		printf(w, "JWT TTL:\t%v\n", cfg.JWTTTL)
		printf(w, "Duplicate threshold:\t%.2f (strict=%t)\n", cfg.DuplicateThreshold, cfg.DuplicateCheckStrict)
		printf(w, "PDF max upload:\t%d bytes\n", cfg.PDFMaxUploadBytes)
		printf(w, "Reminders:\tenabled=%t interval=%v\n", cfg.ReminderEnabled, cfg.ReminderInterval)
		printf(w, "Login rate:\t%.2f/s burst %d\n", cfg.LoginRatePerSec, cfg.LoginBurst)
		if err := w.Flush(); err != nil {
			return err
		}

		printf(cmd.OutOrStdout(), "Configuration is valid\n")
		return nil
	},
}
