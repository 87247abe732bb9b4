package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"artbind/internal/adapters/assets"
	"artbind/internal/adapters/sqlite"
	"artbind/internal/application/commands"
	"artbind/internal/config"
	"artbind/internal/domain"
	"artbind/internal/ports"
)

var (
	assetKind string
	assetPath string
	assetDir  string
)

var assetCmd = &cobra.Command{
	Use:   "asset <fixture> <source>",
	Short: "Load an image or font into an animation",
	Long: `Fetch (http/https) or read (local path) an image or font, decode it and
hand it to an image/font property, or to the animation's referenced asset
slot when --path is omitted. Downloads are cached in SQLite unless
ARTBIND_ASSET_CACHE=off.

Examples:
  artbind-cli asset dashboard ./avatar.png --path avatar
  artbind-cli asset dashboard https://example.com/Inter.ttf --kind font`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := loadFixture(ctx, args[0])
		if err != nil {
			return err
		}

		fetcher, closeCache := newFetcher()
		defer closeCache()

		load := commands.NewLoadAssetCommand(
			registry, fetcher, assets.NewLocalReader(assetDir), assets.Decoder{},
			id, assetPath, domain.ParseKind(assetKind), args[1],
		)
		result, err := load.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

// newFetcher returns an HTTP fetcher backed by the asset cache when one can
// be opened
func newFetcher() (ports.Fetcher, func()) {
	var fetcher ports.Fetcher = assets.NewHTTPFetcher(config.FetchTimeout())
	if config.AssetCacheDisabled() {
		return fetcher, func() {}
	}
	cache, err := sqlite.Open(config.AssetCachePath())
	if err != nil {
		logger.Warn("asset cache unavailable", "error", err)
		return fetcher, func() {}
	}
	return assets.NewCachingFetcher(fetcher, cache, logger), func() { cache.Close() }
}

func init() {
	assetCmd.Flags().StringVar(&assetKind, "kind", "image", "asset kind (image or font)")
	assetCmd.Flags().StringVar(&assetPath, "path", "", "image/font property path (default: the referenced asset slot)")
	assetCmd.Flags().StringVar(&assetDir, "dir", ".", "directory local paths are resolved against")
	rootCmd.AddCommand(assetCmd)
}
