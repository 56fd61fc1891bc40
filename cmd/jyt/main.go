package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/scott-cotton/cli"
)

func main() {
	// Writes to a closed pipe must fail with EPIPE instead of killing the
	// process, so a reader like head ends the run quietly.
	signal.Ignore(syscall.SIGPIPE)
	cli.MainContext(context.Background(), JytCommand())
}
