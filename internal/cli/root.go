package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"component-inventory-backend/internal/client"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	server  string
	timeout time.Duration
}

func (o *rootOptions) client() *client.Client {
	return client.NewClient(o.server, o.timeout)
}

// NewRootCommand builds the inventoryctl command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "inventoryctl",
		Short:         "Talk to a running component inventory backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultServer := os.Getenv("INVENTORY_SERVER")
	if defaultServer == "" {
		defaultServer = "http://127.0.0.1:7008"
	}
	cmd.PersistentFlags().StringVar(&opts.server, "server", defaultServer, "backend base URL (env INVENTORY_SERVER)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")

	cmd.AddCommand(
		callCommand(opts),
		operationsCommand(opts),
		pingCommand(opts),
	)
	return cmd
}

// callCommand creates the call command
func callCommand(opts *rootOptions) *cobra.Command {
	var useWebSocket bool

	cmd := &cobra.Command{
		Use:   "call <operation> [arg...]",
		Short: "Invoke a bridge operation",
		Long: `Invoke a bridge operation with positional arguments.

Each argument is parsed as JSON; anything that is not valid JSON is sent as a string.

Examples:
  inventoryctl call getCategories
  inventoryctl call addCategory Resistors
  inventoryctl call getComponents 3
  inventoryctl call addComponent '{"category_id":3,"name":"10k 0805","quantity":200}'
  inventoryctl call searchComponents 0805 --ws`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()
			raw := parseArgs(args[1:])

			var (
				result json.RawMessage
				err    error
			)
			if useWebSocket {
				result, err = c.CallWebSocket(cmd.Context(), args[0], raw)
			} else {
				result, err = c.Call(cmd.Context(), args[0], raw)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&useWebSocket, "ws", false, "call over the WebSocket bridge instead of HTTP")
	return cmd
}

// operationsCommand creates the operations command
func operationsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the operations the backend serves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := opts.client().Operations(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ops.Ready {
				fmt.Fprintln(out, "bridge not ready: database not connected yet")
			}
			for _, name := range ops.Operations {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

// pingCommand creates the ping command
func pingCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check backend and database health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := opts.client().Health(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), health)
		},
	}
}

func parseArgs(args []string) []json.RawMessage {
	raw := make([]json.RawMessage, 0, len(args))
	for _, a := range args {
		if json.Valid([]byte(a)) {
			raw = append(raw, json.RawMessage(a))
			continue
		}
		quoted, _ := json.Marshal(a)
		raw = append(raw, quoted)
	}
	return raw
}

func printJSON(w io.Writer, data json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		_, err = fmt.Fprintln(w, strings.TrimSpace(string(data)))
		return err
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}
