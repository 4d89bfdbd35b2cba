package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <path.svg>",
	Short: "Print the content of an SVG file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

var writeContent string

var writeCmd = &cobra.Command{
	Use:   "write <path.tsx>",
	Short: "Write TSX content to a file",
	Long: `Writes content to a .tsx file, creating or overwriting it. The content is
taken from --content when given and from stdin otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringVar(&writeContent, "content", "", "Content to write instead of reading stdin")

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(writeCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	ctx := setupContext(cmd.Context())
	s := newSession(sessionOptions{})

	resp := s.registry.Invoke(ctx, "read_svg_file", mustMarshal(map[string]string{"path": args[0]}))
	if err := commandError("Failed to read SVG file", resp); err != nil {
		return err
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), resp.Result)
	return err
}

func runWrite(cmd *cobra.Command, args []string) error {
	ctx := setupContext(cmd.Context())
	s := newSession(sessionOptions{})

	content := writeContent
	if !cmd.Flags().Changed("content") {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		content = string(b)
	}

	resp := s.registry.Invoke(ctx, "save_tsx_file", mustMarshal(map[string]string{"path": args[0], "content": content}))
	return commandError("Failed to save TSX file", resp)
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal command arguments: %v", err))
	}
	return b
}
