package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"todo-webapp/internal/cli"
	"todo-webapp/internal/client"
	"todo-webapp/internal/tui"
)

func main() {
	server := os.Getenv("TODO_SERVER")
	if server == "" {
		server = client.DefaultServer
	}
	flag.StringVar(&server, "server", server, "base URL of the todo service")
	flag.Parse()

	api := client.New(server)

	// No subcommand opens the interactive list.
	args := flag.Args()
	if len(args) == 0 {
		if err := tui.Run(api); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := (&cli.Runner{API: api, Out: os.Stdout, Err: os.Stderr, Server: server}).Run(ctx, args)
	stop()
	os.Exit(code)
}
