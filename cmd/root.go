/*
Copyright © 2025 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/blacktop/hubcast/internal/config"
	"github.com/blacktop/hubcast/internal/gateway"
	"github.com/blacktop/hubcast/internal/logutil"
	"github.com/blacktop/hubcast/internal/social"
	"github.com/blacktop/hubcast/internal/social/facebook"
	"github.com/blacktop/hubcast/internal/social/instagram"
	"github.com/blacktop/hubcast/internal/social/linkedin"
	"github.com/blacktop/hubcast/internal/social/pinterest"
	"github.com/blacktop/hubcast/internal/social/twitter"
)

var (
	hostFlag    string
	portFlag    int
	configFlag  string
	verboseFlag bool
	dryRun      bool
)

const shutdownGrace = 10 * time.Second

// Execute runs the root command.
func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hubcast",
		Short: "Social publishing gateway",
		Long: "hubcast runs an HTTP gateway that accepts one piece of content and fans it " +
			"out to Twitter/X, Facebook, Instagram, LinkedIn, and Pinterest, returning a " +
			"per-platform success/failure report.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
		Example: `  hubcast --port 8080
  hubcast --config hubcast.yml --verbose
  hubcast --dry-run`,
	}

	cmd.Flags().StringVar(&hostFlag, "host", "", "Interface to listen on")
	cmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on")
	cmd.Flags().StringVar(&configFlag, "config", "", "Path to a YAML config file")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "V", false, "Enable verbose logging")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log what would be posted without calling any platform")
	cmd.Flags().SortFlags = false

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	logutil.SetVerbose(verboseFlag)

	// optional .env for local development; credentials stay in the process env
	if err := godotenv.Load(); err == nil {
		logutil.Debugf("loaded .env file")
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = hostFlag
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = portFlag
	}

	dispatcher := social.NewDispatcher(defaultFactories(), dryRun)
	server := gateway.NewServer(cfg, dispatcher)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// defaultFactories wires one constructor per canonical platform name. Each
// factory reads its own credentials so a missing one fails only that
// platform at dispatch time.
func defaultFactories() map[string]social.Factory {
	return map[string]social.Factory{
		"Twitter": func() (social.Poster, error) {
			cfg, err := twitter.ConfigFromEnv()
			if err != nil {
				return nil, err
			}
			return twitter.New(cfg), nil
		},
		"Facebook": func() (social.Poster, error) {
			cfg, err := facebook.ConfigFromEnv()
			if err != nil {
				return nil, err
			}
			return facebook.New(cfg), nil
		},
		"Instagram": func() (social.Poster, error) {
			cfg, err := instagram.ConfigFromEnv()
			if err != nil {
				return nil, err
			}
			return instagram.New(cfg), nil
		},
		"LinkedIn": func() (social.Poster, error) {
			cfg, err := linkedin.ConfigFromEnv()
			if err != nil {
				return nil, err
			}
			return linkedin.New(cfg), nil
		},
		"Pinterest": func() (social.Poster, error) {
			cfg, err := pinterest.ConfigFromEnv()
			if err != nil {
				return nil, err
			}
			return pinterest.New(cfg), nil
		},
	}
}
