package main

import (
	"fmt"
	"strings"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/adapter/dataset"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/service/lexicon"
)

func lookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup TOKEN...",
		Short: "Look up words in the lexicon dataset",
		Long: `Load the configured lexicon dataset once and print the entry for each
token, matched by simplified or traditional form.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			source, err := dataset.New(ctx, cfg.Lexicon, logger)
			if err != nil {
				return fmt.Errorf("lexicon source: %w", err)
			}
			index := lexicon.NewIndex(logger, source, cfg.Lexicon)
			if err := index.Load(ctx); err != nil {
				return err
			}
			if err := index.LoadErr(); err != nil {
				return fmt.Errorf("load lexicon: %w", err)
			}

			tbl := table.New("Token", "Simplified", "Traditional", "Pinyin", "Definitions").
				WithWriter(cmd.OutOrStdout())
			for _, token := range args {
				def, err := index.Define(ctx, token)
				if err != nil {
					return err
				}
				if !def.Found {
					tbl.AddRow(token, "-", "-", "-", "(not found)")
					continue
				}
				e := def.Entry
				tbl.AddRow(token, e.Simplified, e.Traditional, e.Pinyin, strings.Join(e.Glosses, "; "))
			}
			tbl.Print()
			return nil
		},
	}
}
