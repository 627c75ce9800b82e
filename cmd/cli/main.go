package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL   string
	timeout   time.Duration
	authToken string
)

// Swappable for tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "gowallet-cli",
		Short: "GoWallet CLI tool",
		Long:  `A command line interface for interacting with the GoWallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoWallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Bearer token for authenticated endpoints")

	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the current wallet balance",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/wallet/balance")
		},
	}

	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "List wallet transactions, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/wallet/transactions")
		},
	}

	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Check that the ledger history matches the stored balance",
		Run: func(cmd *cobra.Command, args []string) {
			checkAudit()
		},
	}

	walletCmd.AddCommand(balanceCmd, transactionsCmd, auditCmd)
	rootCmd.AddCommand(walletCmd, hashPINCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func hashPINCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-pin [pin]",
		Short: "Print the bcrypt hash of a PIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func doGet(path string) (int, []byte, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func getAndPrint(path string) {
	status, body, err := doGet(path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}

	if status != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", status, truncate(string(body), 512))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
	printJSON(result)
}

func checkAudit() {
	status, body, err := doGet("/api/v1/wallet/audit")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}

	if status != http.StatusOK {
		fmt.Printf("Audit FAILED (Status: %d)\nResponse: %s\n", status, truncate(string(body), 512))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Printf("Audit PASSED\n")
	} else {
		fmt.Printf("Audit FAILED: ledger does not match the stored balance\n")
	}
	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
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
