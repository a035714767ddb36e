package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/logger"
)

var (
	decodeJSON      bool
	decodeMediaType string
	decodePage      int
	decodeWorkers   int
)

var decodeCmd = &cobra.Command{
	Use:   "decode <file>...",
	Short: "Decode documents into plain text",
	Long: `Decode one or more documents and print their text page by page.

The media type is detected from the file content and extension unless
--media-type is given. Several files are decoded concurrently, bounded by
the decode.workers setting or --workers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeJSON, "json", false, "output results as JSON")
	decodeCmd.Flags().StringVarP(&decodeMediaType, "media-type", "t", "", "declared media type of every input")
	decodeCmd.Flags().IntVarP(&decodePage, "page", "p", 0, "print only this 1-based page")
	decodeCmd.Flags().IntVarP(&decodeWorkers, "workers", "w", 0, "concurrent decodes (0 = decode.workers setting)")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	if decodeService == nil {
		return errors.New("decode service not configured")
	}

	results := make([]*domain.FileContent, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workerLimit())
	for i, path := range args {
		g.Go(func() error {
			content, err := decodeService.DecodeFile(ctx, path, decodeMediaType)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", path, err)
			}
			content, err = selectPage(content, decodePage)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if decodeJSON {
		outputs := make([]decodeOutput, len(args))
		for i, path := range args {
			outputs[i] = decodeOutput{Path: path, Content: results[i]}
		}
		return writeJSON(cmd.OutOrStdout(), outputs)
	}

	styles := stylesFor(cmd.OutOrStdout())
	for i, path := range args {
		writeContent(cmd.OutOrStdout(), styles, path, results[i])
	}
	return nil
}

// workerLimit resolves the concurrency bound: the flag, then the
// decode.workers setting, then one.
func workerLimit() int {
	if decodeWorkers > 0 {
		return decodeWorkers
	}
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err == nil && settings.Decode.Workers > 0 {
			return settings.Decode.Workers
		}
		if err != nil {
			logger.Warn("reading settings: %v", err)
		}
	}
	return 1
}
