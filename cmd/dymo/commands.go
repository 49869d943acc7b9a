package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	dymo "github.com/dymoapi/client-go"
)

// cliConfig is read from the environment, with flags taking precedence.
type cliConfig struct {
	BaseURL string        `env:"DYMO_API_URL"`
	APIKey  string        `env:"DYMO_API_KEY"`
	Timeout time.Duration `env:"DYMO_TIMEOUT" envDefault:"30s"`
}

func newRootCmd() *cobra.Command {
	var (
		cfg         cliConfig
		flagBaseURL string
		flagAPIKey  string
	)

	root := &cobra.Command{
		Use:           "dymo",
		Short:         "Command-line client for the Dymo public API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The .env file is optional.
			_ = godotenv.Load()
			if err := env.Parse(&cfg); err != nil {
				return fmt.Errorf("parse environment: %w", err)
			}
			if flagBaseURL != "" {
				cfg.BaseURL = flagBaseURL
			}
			if flagAPIKey != "" {
				cfg.APIKey = flagAPIKey
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL (default $DYMO_API_URL)")
	root.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "API key (default $DYMO_API_KEY)")

	root.AddCommand(
		newPrayerTimesCmd(&cfg),
		newSanitizeCmd(&cfg),
		newValidPwdCmd(&cfg),
		newEncryptURLCmd(&cfg),
	)

	return root
}

func newClient(cfg *cliConfig) (*dymo.Client, error) {
	opts := []dymo.Option{dymo.WithTimeout(cfg.Timeout)}
	if cfg.BaseURL != "" {
		opts = append(opts, dymo.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, dymo.WithAPIKey(cfg.APIKey))
	}
	return dymo.New(opts...)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newPrayerTimesCmd(cfg *cliConfig) *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "prayer-times",
		Short: "Fetch the daily prayer schedule for a coordinate pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			result, err := client.PrayerTimes(cmd.Context(), lat, lon)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func newSanitizeCmd(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize <input>",
		Short: "Classify an input string and flag injection patterns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			result, err := client.SanitizeInput(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}

func newValidPwdCmd(cfg *cliConfig) *cobra.Command {
	var (
		email       string
		bannedWords []string
		minLength   int
		maxLength   int
	)

	cmd := &cobra.Command{
		Use:   "valid-pwd <password>",
		Short: "Check a password against the server-side strength policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			result, err := client.ValidatePassword(cmd.Context(), dymo.PasswordRequest{
				Password:    args[0],
				Email:       email,
				BannedWords: bannedWords,
				MinLength:   minLength,
				MaxLength:   maxLength,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "reject passwords derived from this email")
	cmd.Flags().StringSliceVar(&bannedWords, "banned-words", nil, "forbidden words (max 10)")
	cmd.Flags().IntVar(&minLength, "min", 0, "minimum length override (8-32)")
	cmd.Flags().IntVar(&maxLength, "max", 0, "maximum length override (32-100)")

	return cmd
}

func newEncryptURLCmd(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt-url <url>",
		Short: "Encrypt a URL server-side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			result, err := client.EncryptURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}
