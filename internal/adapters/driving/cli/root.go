// Package cli provides the cobra command tree for docdecode.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdecode/internal/core/ports/driving"
	"github.com/custodia-labs/docdecode/internal/logger"
)

// version is set at build time through -ldflags.
var version = "dev"

// Driving ports used by the commands. Set through SetServices or the factory.
var (
	decodeService   driving.DecodeService
	settingsService driving.SettingsService
)

var (
	verbose    bool
	configPath string
)

// Services bundles the driving ports the commands depend on.
type Services struct {
	Decode   driving.DecodeService
	Settings driving.SettingsService
}

// Factory builds the services once flags are parsed. configPath is the
// value of --config and may be empty.
type Factory func(configPath string) (*Services, error)

var factory Factory

var rootCmd = &cobra.Command{
	Use:   "docdecode",
	Short: "Decode office documents into paginated plain text",
	Long: `docdecode turns Word, PowerPoint, OpenDocument, PDF, HTML and plain text
documents into plain text split into page chunks.

Word documents are paginated on the page breaks recorded by the last
application that rendered them.`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.docdecode/config.toml)")
}

// SetServices injects the driving ports.
func SetServices(decode driving.DecodeService, settings driving.SettingsService) {
	decodeService = decode
	settingsService = settings
}

// SetFactory registers a constructor used when no services were injected.
func SetFactory(f Factory) {
	factory = f
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func bootstrap(_ *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}

	if decodeService != nil || factory == nil {
		return nil
	}

	svc, err := factory(configPath)
	if err != nil {
		return err
	}
	SetServices(svc.Decode, svc.Settings)
	return nil
}
