package main

import (
	"context"
	"strings"

	log "log/slog"

	"hero/internal/ipc"
	"hero/internal/session"
)

// controlHandler serves hero-ctl requests. All of them go through the
// session loop, so they queue behind whatever command is running.
func controlHandler(ctx context.Context, loop *session.Loop) ipc.Handler {
	return func(msg ipc.ControlMessage) ipc.ControlReply {
		if !loop.Running() {
			return ipc.ControlReply{Error: "shutting down"}
		}

		switch msg.Cmd {
		case ipc.CmdTrigger:
			text, ok := loop.Trigger(ctx)
			if !ok {
				return ipc.ControlReply{Error: "could not recognize speech"}
			}
			return ipc.ControlReply{OK: true, Text: text}

		case ipc.CmdSay:
			text := strings.TrimSpace(msg.Text)
			if text == "" {
				return ipc.ControlReply{Error: "empty command"}
			}
			loop.Say(ctx, text)
			return ipc.ControlReply{OK: true, Text: text}

		case ipc.CmdStop:
			loop.Say(ctx, "shutdown")
			return ipc.ControlReply{OK: true}

		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
			return ipc.ControlReply{Error: "unknown command " + msg.Cmd}
		}
	}
}
