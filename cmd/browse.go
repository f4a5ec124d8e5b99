package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/resource-finder/internal/router"
	"github.com/sells-group/resource-finder/internal/session"
)

var (
	browseQuery    string
	browseCategory string
	browseLocation string
	browseMore     int
	browseMap      bool
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Render one view of nearby resources and libraries",
	Long:  "Renders the home view (closest resources and nearest libraries) or, with --location, the detail view of one library.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		out, err := newOutput(flagFormat, cmd.OutOrStdout(), browseMap)
		if err != nil {
			return err
		}

		cat, err := loadCatalog(ctx, cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		initial := ""
		if browseLocation != "" {
			initial = router.Fragment(router.Detail(browseLocation))
		}
		store := router.NewMemoryStore(initial)

		// Intermediate states are not rendered; only the final view is.
		ctrl, err := newController(cfg, cat, store, nil)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		ctrl.LocateUser(ctx)
		if browseCategory != "" {
			ctrl.SetCategory(browseCategory)
		}
		if browseQuery != "" {
			ctrl.SetQuery(browseQuery)
		}
		for i := 0; i < browseMore; i++ {
			ctrl.ShowMore()
		}

		v, m := session.Build(cat, ctrl.State(), limitsFrom(cfg))
		out.Update(m)
		return out.Render(v)
	},
}

func init() {
	browseCmd.Flags().StringVarP(&browseQuery, "query", "q", "", "text search; every word must match")
	browseCmd.Flags().StringVarP(&browseCategory, "category", "c", "", "category tag to filter resources by (default all)")
	browseCmd.Flags().StringVarP(&browseLocation, "location", "l", "", "library slug to open in the detail view")
	browseCmd.Flags().IntVar(&browseMore, "more", 0, "number of extra result pages to reveal")
	browseCmd.Flags().BoolVar(&browseMap, "map", false, "print map markers and viewport (text format)")

	rootCmd.AddCommand(browseCmd)
}
