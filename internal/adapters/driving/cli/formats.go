package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var formatsJSON bool

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the available decoders",
	Long: `List the registered decoders in selection order. The first decoder
whose media type family matches an input is used.`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

func init() {
	formatsCmd.Flags().BoolVar(&formatsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, _ []string) error {
	if decodeService == nil {
		return errors.New("decode service not configured")
	}

	decoders := decodeService.Decoders()
	if formatsJSON {
		return writeJSON(cmd.OutOrStdout(), decoders)
	}

	if len(decoders) == 0 {
		cmd.Println("No decoders registered.")
		return nil
	}

	cmd.Printf("%-10s %-8s %s\n", "NAME", "PRIORITY", "MEDIA TYPES")
	for _, d := range decoders {
		cmd.Printf("%-10s %-8d %s\n", d.Name, d.Priority, strings.Join(d.MediaTypes, ", "))
	}
	return nil
}
