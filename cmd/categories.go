package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/resource-finder/internal/catalog"
	"github.com/sells-group/resource-finder/internal/query"
	"github.com/sells-group/resource-finder/internal/render"
)

// categoryCount is one row of the categories listing.
type categoryCount struct {
	Category  string `json:"category"`
	Resources int    `json:"resources"`
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category tags found in the resources document",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog(cmd.Context(), cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		rows := countCategories(cat)
		if flagFormat == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}
		formatCategories(cmd.OutOrStdout(), rows)
		return nil
	},
}

func countCategories(cat *catalog.Catalog) []categoryCount {
	rows := make([]categoryCount, 0, len(cat.Categories))
	for _, c := range cat.Categories {
		rows = append(rows, categoryCount{
			Category:  c,
			Resources: len(query.FilterByCategory(cat.Resources, c)),
		})
	}
	return rows
}

func formatCategories(w io.Writer, rows []categoryCount) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CATEGORY\tRESOURCES")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", render.Clean(r.Category), r.Resources)
	}
	_ = tw.Flush()
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
