package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joacominatel/trident/internal/config"
)

var secretNames = []string{
	config.KeyRedshiftPassword,
	config.KeyJiraAPIToken,
	config.KeyConfluenceAPIToken,
}

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage secrets in the OS keyring",
	Long: `Store service secrets in the OS keyring so they do not have to
live in the environment. Known names:

  ` + strings.Join(secretNames, "\n  "),
}

var secretSetCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Store a secret (value read from stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !knownSecret(name) {
			return fmt.Errorf("unknown secret %q", name)
		}
		reader := bufio.NewReader(os.Stdin)
		value, err := reader.ReadString('\n')
		if err != nil && value == "" {
			return fmt.Errorf("read secret: %w", err)
		}
		value = strings.TrimRight(value, "\r\n")
		if value == "" {
			return fmt.Errorf("empty secret")
		}
		if err := config.StoreSecret(name, value); err != nil {
			return fmt.Errorf("store secret: %w", err)
		}
		fmt.Printf("Stored %s\n", name)
		return nil
	},
}

var secretRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.DeleteSecret(args[0]); err != nil {
			return fmt.Errorf("delete secret: %w", err)
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

func knownSecret(name string) bool {
	for _, known := range secretNames {
		if name == known {
			return true
		}
	}
	return false
}

func init() {
	secretCmd.AddCommand(secretSetCmd, secretRmCmd)
}
