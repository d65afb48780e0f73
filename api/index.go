package handler

import (
	"lendr/config"
	"lendr/di"
	"lendr/shared/logger"
	"net/http"
)

// Handler adapts the application for serverless platforms that route every
// request through a single function.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()
	app.HTTP.ServeHTTP(w, r)
}
