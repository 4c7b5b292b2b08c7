package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hero/internal/ipc"
)

var socketPath string

var rootCmd = &cobra.Command{
	Use:           "hero-ctl",
	Short:         "Control a running hero daemon",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Listen for one command now, without the wake word",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(ipc.ControlMessage{Cmd: ipc.CmdTrigger}, time.Minute)
	},
}

var sayCmd = &cobra.Command{
	Use:   "say <command...>",
	Short: "Dispatch a typed command as if it had been spoken",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(ipc.ControlMessage{Cmd: ipc.CmdSay, Text: strings.Join(args, " ")}, time.Minute)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Shut the daemon down",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(ipc.ControlMessage{Cmd: ipc.CmdStop}, 10*time.Second)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&socketPath, "socket", "s", ipc.DefaultSocketPath, "Daemon control socket")
	rootCmd.AddCommand(triggerCmd, sayCmd, stopCmd)
}

func send(msg ipc.ControlMessage, timeout time.Duration) error {
	reply, err := ipc.SendCommand(socketPath, msg, timeout)
	if err != nil {
		return fmt.Errorf("hero daemon not running: %w", err)
	}
	if !reply.OK {
		return fmt.Errorf("%s: %s", msg.Cmd, reply.Error)
	}
	if reply.Text != "" {
		fmt.Println(reply.Text)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
