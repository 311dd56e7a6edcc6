package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.lost.host/meutraa/fourk/internal/config"
)

func main() {
	if err := run(); nil != err {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if nil != err {
		return err
	}
	inv, err := config.Parse(cfg, os.Args[1:])
	if nil != err {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := NewProgram(inv.Config)
	if nil != err {
		return err
	}
	defer p.Close()

	switch inv.Command {
	case config.CommandScan:
		return p.Scan(inv.Dir)
	case config.CommandList:
		return p.List(os.Stdout)
	}
	return p.Play(ctx, inv.Chart, inv.Index)
}
