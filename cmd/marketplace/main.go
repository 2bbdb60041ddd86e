package main

import (
	"context"
	"time"

	"github.com/soukhub/marketplace/config"
	"github.com/soukhub/marketplace/internal/app"
	"github.com/soukhub/marketplace/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	marketplace := app.New(sigCtx, cfg)

	marketplace.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	marketplace.Close(ctx)
}
