package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and available decoders",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("docdecode version %s\n", version)
		if decodeService == nil {
			return
		}

		decoders := decodeService.Decoders()
		names := make([]string, len(decoders))
		for i, d := range decoders {
			names[i] = d.Name
		}
		cmd.Printf("decoders: %s\n", strings.Join(names, ", "))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
