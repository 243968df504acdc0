package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/app"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/service/vocabimport"
)

// noSessions satisfies the import service outside the server, where no
// browse sessions exist.
type noSessions struct{}

func (noSessions) InvalidateAll() {}

func importCommand() *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	c := &cobra.Command{
		Use:   "import",
		Short: "Validate and commit delimited vocabulary text",
		Long: `Parse --file (or stdin with "-") with the configured column layout.
Every line must be valid for the batch to be committed; otherwise the
invalid lines are listed and nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			text, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			spec := vocabimport.SpecFromConfig(cfg.Import)
			batch, err := vocabimport.ParseBatch(text, spec)
			if err != nil {
				return err
			}

			printInvalid(cmd.OutOrStdout(), batch)
			fmt.Fprintf(cmd.ErrOrStderr(), "%d valid, %d invalid\n", len(batch.Valid()), len(batch.Invalid()))
			if dryRun {
				return nil
			}
			if !batch.CanCommit() {
				return domain.ErrValidationIncomplete
			}

			store, closeStore, err := app.OpenStore(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			svc := vocabimport.NewService(logger, store, noSessions{}, spec)
			n, err := svc.Commit(ctx, batch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d rows\n", n)
			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", `input file, "-" for stdin`)
	c.Flags().BoolVar(&dryRun, "dry-run", false, "validate only")
	_ = c.MarkFlagRequired("file")
	return c
}

func readInput(cmd *cobra.Command, file string) (string, error) {
	if file == "" {
		return "", errors.New("--file is required")
	}
	var r io.Reader = cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func printInvalid(w io.Writer, batch vocabimport.Batch) {
	invalid := batch.Report().Invalid
	if len(invalid) == 0 {
		return
	}
	tbl := table.New("Line", "Reason", "Content").WithWriter(w)
	for _, r := range invalid {
		tbl.AddRow(r.Line, r.Message, r.Content)
	}
	tbl.Print()
}
