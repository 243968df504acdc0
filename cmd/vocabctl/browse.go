package main

import (
	"fmt"
	"strconv"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/app"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/service/vocab"
)

func browseCommand() *cobra.Command {
	var (
		level string
		pages int
	)

	c := &cobra.Command{
		Use:   "browse",
		Short: "Page through stored vocabulary",
		Long: `Fetch up to --pages pages in browse order (level, pinyin) and print the
items matching --level. The filter applies to the fetched prefix only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			filter, err := domain.ParseLevelFilter(level)
			if err != nil {
				return err
			}

			store, closeStore, err := app.OpenStore(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			loader := vocab.NewLoader(logger, store, cfg.Vocab.PageSize)
			defer loader.Close()

			for i := 0; pages <= 0 || i < pages; i++ {
				if !loader.Cursor().HasMore {
					break
				}
				if err := loader.RequestPage(ctx); err != nil {
					return err
				}
			}

			items := vocab.FilterView(loader.Items(), filter)
			tbl := table.New("ID", "Level", "Traditional", "Simplified", "Pinyin", "English").
				WithWriter(cmd.OutOrStdout())
			for _, it := range items {
				lvl := "-"
				if it.Level != nil {
					lvl = strconv.Itoa(*it.Level)
				}
				tbl.AddRow(it.ID, lvl, it.Traditional, it.Simplified, it.Pinyin, it.English)
			}
			tbl.Print()

			cur := loader.Cursor()
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d loaded items shown (filter %s, more: %t)\n",
				len(items), loader.Len(), filter, cur.HasMore)
			return nil
		},
	}

	c.Flags().StringVarP(&level, "level", "l", "all", `level filter: "all" or 1-6`)
	c.Flags().IntVarP(&pages, "pages", "p", 1, "pages to fetch, 0 for all")
	return c
}
