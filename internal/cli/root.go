// Package cli implements the billsplit command line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/fairsplit/internal/service"
	"github.com/mmynk/fairsplit/pkg/api"
	"github.com/mmynk/fairsplit/pkg/api/apiconnect"
	"github.com/mmynk/fairsplit/pkg/logging"
)

type rootOptions struct {
	server  string
	verbose bool
}

// NewRootCommand builds the billsplit command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "billsplit",
		Short: "Split a shared bill by what each person ate",
		Long: `billsplit settles a bill file: each person pays for their items plus a
proportional share of tax and tip, then coverage rules move shares between
people. Bills are settled locally unless --server points at a fairsplit server.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.server, "server", "s", "", "fairsplit server URL, e.g. http://localhost:8080")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newSettleCmd(opts),
		newShareCmd(opts),
		newSeedCmd(opts),
		newNewCmd(),
		newItemCmd(),
		newAssignCmd(),
		newWeightCmd(),
		newPersonCmd(),
		newTipCmd(),
		newCoverCmd(),
	)
	return root
}

// Execute runs the billsplit CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

// splitClient settles in-process, or over the network when --server is set.
// Both satisfy the same method set.
func (o *rootOptions) splitClient(cmd *cobra.Command) apiconnect.SplitServiceClient {
	if o.server != "" {
		return apiconnect.NewSplitServiceClient(http.DefaultClient, o.server)
	}
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return service.NewSplitService(logging.New(cmd.ErrOrStderr(), level), nil)
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func readBill(cmd *cobra.Command, path string) (*api.Bill, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	var bill api.Bill
	if err := json.Unmarshal(data, &bill); err != nil {
		return nil, fmt.Errorf("failed to parse bill %s: %w", path, err)
	}
	return &bill, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
