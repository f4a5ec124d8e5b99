package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/resource-finder/internal/catalog"
	"github.com/sells-group/resource-finder/internal/render"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List libraries with the slugs used to open them",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog(cmd.Context(), cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		if flagFormat == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cat.Locations)
		}
		formatLocations(cmd.OutOrStdout(), cat)
		return nil
	},
}

func formatLocations(w io.Writer, cat *catalog.Catalog) {
	if len(cat.Locations) == 0 {
		fmt.Fprintln(w, "No libraries found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SLUG\tNAME\tGROUP\tADDRESS")
	for _, l := range cat.Locations {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			l.Slug, render.Clean(orDash(l.Name)), render.Clean(orDash(l.Group)), render.Clean(orDash(l.AddressText())))
	}
	_ = tw.Flush()

	// Locations overwritten by a later one under the same slug cannot be opened.
	for _, c := range cat.Slugs.Collisions() {
		fmt.Fprintf(w, "warning: %s #%d is shadowed by #%d\n", c.Slug, c.Replaced, c.By)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(locationsCmd)
}
