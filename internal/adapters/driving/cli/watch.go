package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdecode/internal/logger"
)

var watchJSON bool

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Decode documents as they change",
	Long: `Watch a directory and decode every file that is created or written
in it. Hidden files and subdirectories are ignored. Decode failures are
reported and watching continues. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "output each result as JSON")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if decodeService == nil {
		return errors.New("decode service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("failed to watch %s: not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	styles := stylesFor(out)
	logger.Info("watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, decode := watchTarget(event)
			if !decode {
				continue
			}
			content, err := decodeService.DecodeFile(ctx, path, "")
			if err != nil {
				writeFailure(cmd.ErrOrStderr(), styles, path, err)
				continue
			}
			if watchJSON {
				if err := writeJSON(out, decodeOutput{Path: path, Content: content}); err != nil {
					return err
				}
				continue
			}
			writeContent(out, styles, path, content)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// watchTarget reports whether event names a visible regular file that
// was created or written.
func watchTarget(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}
