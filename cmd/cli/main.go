package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	rootCmd := &cobra.Command{
		Use:           "finlab-cli",
		Short:         "finlab CLI tool",
		Long:          `Offline reports over a transaction export, plus checks against a running finlab API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the finlab API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		reportCmd(),
		pingCmd(&baseURL, &timeout),
		hashPasswordCmd(),
		migrateCmd(),
	)

	return rootCmd
}

func pingCmd(baseURL *string, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check liveness and readiness of the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: *timeout}
			failed := false
			for _, path := range []string{"/health", "/ready"} {
				status, body, err := get(client, strings.TrimRight(*baseURL, "/")+path)
				if err != nil {
					return fmt.Errorf("request %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %d %s\n", path, status, truncate(strings.TrimSpace(body), 120))
				if status != http.StatusOK {
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("service is not ready")
			}
			return nil
		},
	}
}

func get(client *http.Client, url string) (int, string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for seeding users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
