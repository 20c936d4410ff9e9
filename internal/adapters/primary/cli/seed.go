package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ecm-catalogue-service/internal/adapters/primary/fixture"
	"ecm-catalogue-service/internal/adapters/secondary/store"
	"ecm-catalogue-service/internal/config"
	"ecm-catalogue-service/internal/core/services"
)

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load a catalogue file into the configured store",
	Long: `Loads a catalogue YAML file into the store selected by STORE_DRIVER
(memory, postgres or sqlite). The file defaults to --catalogue.`,
	Args: cobra.MaximumNArgs(1),
	// Seeding writes to the configured store, not the in-memory catalogue.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	path := cataloguePath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no catalogue file given")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	sum, err := fixture.LoadFile(ctx, services.NewCatalogueService(st.Repo), path)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s store: %d musicians, %d instruments, %d albums, %d musician instruments\n",
		cfg.Store.Driver, sum.Musicians, sum.Instruments, sum.Albums, sum.MusicianInstruments)
	return nil
}
