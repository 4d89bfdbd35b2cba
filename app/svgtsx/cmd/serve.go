package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cchalm/svgtsx/internal/commands"
	"github.com/cchalm/svgtsx/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve commands to a front end over stdin and stdout",
	Long: `Reads newline-delimited JSON requests from stdin and writes one JSON response
per request to stdout:

  {"id": 1, "command": "read_svg_file", "args": {"path": "icon.svg"}}
  {"id": 1, "result": "<svg ...>"}

Requests run concurrently, so responses may arrive out of order; match them by
id. The window background is set to the configured theme color at startup.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// request is one line of serve input
type request struct {
	ID      json.RawMessage `json:"id"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args"`
}

// response is one line of serve output
type response struct {
	ID     json.RawMessage `json:"id"`
	Result any             `json:"result"`
	Error  string          `json:"error,omitempty"`
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := setupContext(cmd.Context())
	s := newSession(sessionOptions{interactive: true})
	defer s.close()

	logging.Logger().Info("serving commands", zap.Strings("commands", s.registry.Names()))
	return serve(ctx, s.registry, cmd.InOrStdin(), cmd.OutOrStdout())
}

// invoker runs a named command
type invoker interface {
	Invoke(ctx context.Context, name string, args json.RawMessage) commands.Response
}

// serve dispatches each request line as an independent task. It returns once input is exhausted and every task has
// answered, or as soon as ctx is cancelled or a response cannot be written
func serve(ctx context.Context, registry invoker, in io.Reader, out io.Writer) error {
	var mu sync.Mutex
	enc := json.NewEncoder(out)
	write := func(resp response) error {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)

	// The scanner blocks on input, so it runs apart from the dispatch loop. It is abandoned on cancellation and exits
	// with the process
	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
		for scanner.Scan() {
			select {
			case lines <- bytes.Clone(scanner.Bytes()):
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

dispatch:
	for {
		select {
		case <-ctx.Done():
			break dispatch
		case line, ok := <-lines:
			if !ok {
				break dispatch
			}
			if len(line) == 0 {
				continue
			}

			var req request
			if err := json.Unmarshal(line, &req); err != nil {
				g.Go(func() error {
					return write(response{Error: fmt.Sprintf("invalid request: %s", err)})
				})
				continue
			}

			g.Go(func() error {
				resp := registry.Invoke(ctx, req.Command, req.Args)
				return write(response{ID: req.ID, Result: resp.Result, Error: resp.Error})
			})
		}
	}

	if err := g.Wait(); err != nil {
		logging.Logger().Error("stopped serving", zap.Error(err))
		return err
	}
	select {
	case err := <-scanErr:
		if err != nil {
			return fmt.Errorf("failed to read requests: %w", err)
		}
	default:
	}
	return nil
}
