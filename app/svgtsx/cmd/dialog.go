package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cchalm/svgtsx/internal/commands"
	"github.com/cchalm/svgtsx/internal/dialog"
)

var pickOpenCmd = &cobra.Command{
	Use:   "pick-open",
	Short: "Choose an SVG file and print its path",
	Long: `Opens a file picker filtered to SVG files and prints the chosen path.
Nothing is printed when the picker is cancelled; cancelling is not an error.`,
	Args: cobra.NoArgs,
	RunE: runPickOpen,
}

var suggestedName string

var pickSaveCmd = &cobra.Command{
	Use:   "pick-save",
	Short: "Choose where to save a TSX file and print the path",
	Args:  cobra.NoArgs,
	RunE:  runPickSave,
}

func init() {
	pickSaveCmd.Flags().StringVar(&suggestedName, "name", dialog.DefaultSaveName, "Suggested file name")

	rootCmd.AddCommand(pickOpenCmd)
	rootCmd.AddCommand(pickSaveCmd)
}

func runPickOpen(cmd *cobra.Command, _ []string) error {
	ctx := setupContext(cmd.Context())
	s := newSession(sessionOptions{interactive: true})
	defer s.close()

	resp := s.registry.Invoke(ctx, "open_file_dialog", nil)
	return printPickerResponse(cmd, resp)
}

func runPickSave(cmd *cobra.Command, _ []string) error {
	ctx := setupContext(cmd.Context())
	s := newSession(sessionOptions{interactive: true})
	defer s.close()

	resp := s.registry.Invoke(ctx, "save_file_dialog", mustMarshal(map[string]string{"defaultName": suggestedName}))
	return printPickerResponse(cmd, resp)
}

func printPickerResponse(cmd *cobra.Command, resp commands.Response) error {
	if err := commandError("File dialog failed", resp); err != nil {
		return err
	}
	path, _ := resp.Result.(*string)
	if path == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "cancelled")
		return nil
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), *path)
	return err
}
