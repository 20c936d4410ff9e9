// Package cli implements ecmctl, which runs mining queries over a catalogue
// file and seeds configured stores.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ecm-catalogue-service/internal/adapters/primary/fixture"
	"ecm-catalogue-service/internal/adapters/secondary/memory"
	"ecm-catalogue-service/internal/core/services"
)

var (
	cataloguePath string

	catalogueSvc *services.CatalogueService
	minerSvc     *services.MinerService
)

var rootCmd = &cobra.Command{
	Use:   "ecmctl",
	Short: "Query the ECM catalogue",
	Long: `ecmctl answers ranking questions about an ECM catalogue: who released the
most albums, who plays the most instruments, which years were busiest and more.
Queries run over the YAML catalogue given with --catalogue.`,
	SilenceUsage:      true,
	PersistentPreRunE: openCatalogue,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cataloguePath, "catalogue", "", "catalogue YAML file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openCatalogue loads --catalogue into a fresh in-memory store.
func openCatalogue(cmd *cobra.Command, args []string) error {
	repo := memory.NewCatalogueRepository()
	catalogueSvc = services.NewCatalogueService(repo)
	minerSvc = services.NewMinerService(repo)

	if cataloguePath == "" {
		return nil
	}
	if _, err := fixture.LoadFile(context.Background(), catalogueSvc, cataloguePath); err != nil {
		return fmt.Errorf("load catalogue: %w", err)
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
