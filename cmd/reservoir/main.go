package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	e := &env{}
	err := newRootCmd(e).ExecuteContext(ctx)
	e.close()
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "reservoir: %v\n", err)
		os.Exit(1)
	}
}
