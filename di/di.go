package di

import (
	rentalService "lendr/internal/domains/rental/service"
	"lendr/transport/http"
)

// App bundles the HTTP server with the background workers that share its
// dependency graph.
type App struct {
	HTTP      *http.HTTP
	Completer *rentalService.Completer
}
