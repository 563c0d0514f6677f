package myhttp

import (
	"fmt"
	"net/http"
	"os"
)

// GuessHostnameWithScheme returns the base url this service is reachable on,
// outside the scope of a request.
func GuessHostnameWithScheme() string {
	host := os.Getenv("MY_HOST")
	if host != "" {
		return host
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return fmt.Sprintf("http://localhost:%s", port)
}

func HostnameWithScheme(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
