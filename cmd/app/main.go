package main

import (
	"context"
	"lendr/config"
	"lendr/di"
	"lendr/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	app.Completer.Start(context.Background())
	defer app.Completer.Stop()

	app.HTTP.Serve()
}
