package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/resource-finder/internal/config"
)

var cfg *config.Config

// Persistent flag values. Empty means "use the configured value".
var (
	flagFormat    string
	flagPoint     string
	flagAddress   string
	flagResources string
	flagLocations string
)

var rootCmd = &cobra.Command{
	Use:   "resource-finder",
	Short: "Find community resources and libraries near you",
	Long:  "Loads the resources and libraries documents, ranks them by distance from your position, and browses them by category, text search and library.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotEnv(".env"); err != nil {
			return err
		}

		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		applyFlagOverrides(c)
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// loadDotEnv exports the variables of path into the environment when the
// file exists. Variables already set win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return eris.Wrapf(err, "load %s", path)
	}
	return nil
}

func applyFlagOverrides(c *config.Config) {
	if flagResources != "" {
		c.Data.ResourcesURL = flagResources
	}
	if flagLocations != "" {
		c.Data.LocationsURL = flagLocations
	}
	if flagPoint != "" {
		c.Geolocation.Point = flagPoint
	}
	if flagAddress != "" {
		c.Geolocation.Address = flagAddress
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagFormat, "format", "text", "output format (text, json)")
	pf.StringVar(&flagPoint, "point", "", "your position as \"lat,lon\"")
	pf.StringVar(&flagAddress, "address", "", "your street address, geocoded to a position")
	pf.StringVar(&flagResources, "resources", "", "resources document (path, http(s)://, s3://)")
	pf.StringVar(&flagLocations, "locations", "", "libraries document (path, http(s)://, s3://)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
