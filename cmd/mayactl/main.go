package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/mayactl/internal/bridge"
	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/logging"
	"github.com/danmuck/mayactl/internal/maya"
	"github.com/danmuck/mayactl/internal/mcp"
	"github.com/danmuck/mayactl/internal/server"
	"github.com/danmuck/mayactl/internal/tools"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mayactl",
	Short: "MCP bridge to a running Maya command port",
	Long: `mayactl exposes a Maya session as MCP tools. It keeps one persistent
connection to the command port, renders tool calls as MEL-wrapped Python,
and returns structured results over stdio JSON-RPC.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.ConfigureServe()

		cfg, err := loadAppConfig(configPath)
		if err != nil {
			return err
		}

		disp, mgr, err := buildDispatcher(cfg)
		if err != nil {
			return err
		}
		defer mgr.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Ops.Enabled {
			ops := server.New(cfg.Ops.Addr, mgr, disp.Registry())
			go func() {
				if err := ops.Start(); err != nil {
					log.Error().Err(err).Msg("ops_server_failed")
				}
			}()
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				_ = ops.Shutdown(shutdownCtx)
			}()
		}

		return mcp.NewServer(disp, os.Stdin, os.Stdout).Run(ctx)
	},
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.ConfigureRuntime()

		reg := tools.NewRegistry()
		if err := maya.Register(reg); err != nil {
			return err
		}
		for _, spec := range reg.List() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-34s %s\n", spec.Name, spec.Description)
		}
		return nil
	},
}

var (
	execArgsJSON string
	execTimeout  time.Duration
)

var execCmd = &cobra.Command{
	Use:   "exec <tool>",
	Short: "Invoke one tool against the command port and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.ConfigureRuntime()

		cfg, err := loadAppConfig(configPath)
		if err != nil {
			return err
		}

		rawArgs := map[string]any{}
		if execArgsJSON != "" {
			if err := json.Unmarshal([]byte(execArgsJSON), &rawArgs); err != nil {
				return fmt.Errorf("parse --args: %w", err)
			}
		}

		disp, mgr, err := buildDispatcher(cfg)
		if err != nil {
			return err
		}
		defer mgr.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), execTimeout)
		defer cancel()

		res := disp.Invoke(ctx, args[0], rawArgs)
		if !res.OK {
			return fmt.Errorf("%s", res.Err.Error())
		}

		out, err := json.MarshalIndent(res.Value, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func buildDispatcher(cfg appConfig) (*tools.Dispatcher, *bridge.Manager, error) {
	reg := tools.NewRegistry()
	if err := maya.Register(reg); err != nil {
		return nil, nil, err
	}
	if cfg.Bridge.ProbeCommand == "" {
		cfg.Bridge.ProbeCommand = command.ResultsQuery()
	}
	mgr := bridge.NewManager(cfg.Bridge)
	return tools.NewDispatcher(reg, bridge.NewExecutor(mgr)), mgr, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	execCmd.Flags().StringVar(&execArgsJSON, "args", "", "tool arguments as a JSON object")
	execCmd.Flags().DurationVar(&execTimeout, "timeout", 60*time.Second, "overall invocation timeout")
	rootCmd.AddCommand(serveCmd, toolsCmd, execCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mayactl: %v\n", err)
		os.Exit(1)
	}
}
