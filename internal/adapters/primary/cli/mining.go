package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"ecm-catalogue-service/internal/adapters/primary/http/dto"
	"ecm-catalogue-service/internal/core/domain"
	"ecm-catalogue-service/internal/core/services"
)

var (
	rankK     int
	rankJSON  bool
	startYear int
	endYear   int
	refRecord string
	refName   string
	refYear   int
)

var prolificCmd = &cobra.Command{
	Use:   "prolific",
	Short: "Musicians with the most albums",
	Long: `Ranks musicians by the number of albums they are featured on within
[--start, --end]. A bound of 0 leaves that side of the window open.`,
	Args: cobra.NoArgs,
	RunE: runProlific,
}

var talentedCmd = &cobra.Command{
	Use:   "talented",
	Short: "Musicians playing the most instruments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMusicianRanking(cmd, services.QueryTalentedMusicians, minerSvc.MostTalentedMusicians)
	},
}

var socialCmd = &cobra.Command{
	Use:   "social",
	Short: "Musicians with the most distinct collaborators",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMusicianRanking(cmd, services.QuerySocialMusicians, minerSvc.MostSocialMusicians)
	},
}

var busiestYearsCmd = &cobra.Command{
	Use:   "busiest-years",
	Short: "Years with the most releases",
	Args:  cobra.NoArgs,
	RunE:  runBusiestYears,
}

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Albums sharing the most musicians with a reference album",
	Long: `Ranks albums by the share of the reference album's featured musicians they
also feature. Pick the reference with any combination of --record, --name and
--year; the earliest matching album is used.`,
	Args: cobra.NoArgs,
	RunE: runSimilar,
}

var popularInstrumentsCmd = &cobra.Command{
	Use:   "popular-instruments",
	Short: "Instruments named by the most musician-instrument records",
	Args:  cobra.NoArgs,
	RunE:  runPopularInstruments,
}

func addRankFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&rankK, "k", "k", 10, "number of results")
	cmd.Flags().BoolVar(&rankJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(cmd)
}

func init() {
	prolificCmd.Flags().IntVar(&startYear, "start", 0, "first release year (0 for open)")
	prolificCmd.Flags().IntVar(&endYear, "end", 0, "last release year (0 for open)")
	similarCmd.Flags().StringVar(&refRecord, "record", "", "reference album record number")
	similarCmd.Flags().StringVar(&refName, "name", "", "reference album name")
	similarCmd.Flags().IntVar(&refYear, "year", 0, "reference album release year")

	for _, cmd := range []*cobra.Command{
		prolificCmd, talentedCmd, socialCmd, busiestYearsCmd, similarCmd, popularInstrumentsCmd,
	} {
		addRankFlags(cmd)
	}
}

func runProlific(cmd *cobra.Command, args []string) error {
	musicians, err := minerSvc.MostProlificMusicians(context.Background(), rankK, startYear, endYear)
	if err != nil {
		return fmt.Errorf("prolific musicians: %w", err)
	}
	return printMusicians(cmd, services.QueryProlificMusicians, musicians)
}

func runMusicianRanking(cmd *cobra.Command, query string, rank func(context.Context, int) ([]*domain.Musician, error)) error {
	musicians, err := rank(context.Background(), rankK)
	if err != nil {
		return fmt.Errorf("%s: %w", query, err)
	}
	return printMusicians(cmd, query, musicians)
}

func runBusiestYears(cmd *cobra.Command, args []string) error {
	years, err := minerSvc.BusiestYears(context.Background(), rankK)
	if err != nil {
		return fmt.Errorf("busiest years: %w", err)
	}
	if rankJSON {
		return outputJSON(cmd, dto.NewRankingResponse(services.QueryBusiestYears, rankK, years))
	}
	if len(years) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return nil
	}
	for i, y := range years {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %d\n", i+1, y)
	}
	return nil
}

func runSimilar(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ref, err := findReference(ctx)
	if err != nil {
		return err
	}

	albums, err := minerSvc.MostSimilarAlbums(ctx, rankK, ref)
	if err != nil {
		return fmt.Errorf("similar albums: %w", err)
	}

	wanted := make(map[string]bool)
	if ref != nil {
		for _, m := range ref.FeaturedMusicians {
			wanted[m.Name] = true
		}
	}
	items := make([]dto.SimilarAlbum, 0, len(albums))
	for _, a := range albums {
		items = append(items, dto.SimilarAlbum{AlbumRef: dto.ToAlbumRef(a), Similarity: services.Similarity(wanted, a)})
	}

	if rankJSON {
		return outputJSON(cmd, dto.NewRankingResponse(services.QuerySimilarAlbums, rankK, items))
	}
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return nil
	}
	for i, it := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s %s (%d) %.2f\n", i+1, it.RecordNumber, it.AlbumName, it.ReleaseYear, it.Similarity)
	}
	return nil
}

// findReference returns the earliest album matching every reference flag
// given, or nil when none is given.
func findReference(ctx context.Context) (*domain.Album, error) {
	if refRecord == "" && refName == "" && refYear == 0 {
		return nil, nil
	}

	albums, err := catalogueSvc.ListAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	albums = slices.DeleteFunc(albums, func(a *domain.Album) bool {
		return (refRecord != "" && a.RecordNumber != refRecord) ||
			(refName != "" && a.AlbumName != refName) ||
			(refYear != 0 && a.ReleaseYear != refYear)
	})
	if len(albums) == 0 {
		return nil, errors.New("no album matches the reference flags")
	}
	return slices.MinFunc(albums, domain.CompareAlbums), nil
}

func runPopularInstruments(cmd *cobra.Command, args []string) error {
	instruments, err := minerSvc.MostPopularInstruments(context.Background(), rankK)
	if err != nil {
		return fmt.Errorf("popular instruments: %w", err)
	}
	if rankJSON {
		return outputJSON(cmd, dto.NewRankingResponse(services.QueryPopularInstruments, rankK, dto.ToInstrumentResponses(instruments)))
	}
	if len(instruments) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return nil
	}
	for i, inst := range instruments {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, inst.Name)
	}
	return nil
}

func printMusicians(cmd *cobra.Command, query string, musicians []*domain.Musician) error {
	if rankJSON {
		return outputJSON(cmd, dto.NewRankingResponse(query, rankK, dto.ToMusicianRefs(musicians)))
	}
	if len(musicians) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return nil
	}
	for i, m := range musicians {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, m.Name)
	}
	return nil
}
