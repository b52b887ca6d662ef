// Command healthcheck probes the running server's /healthz endpoint and
// exits 0 on a 200. It exists for container HEALTHCHECK directives, where
// pulling curl into the image just for this is not worth it.
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"
)

func main() {
	os.Exit(check())
}

func check() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := "http://" + probeAddr(os.Getenv("HOOKS_LISTEN_ADDR")) + "/healthz"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 1
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 1
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 1
	}
	return 0
}

// probeAddr rewrites the server's listen address into one the probe can
// dial. The server binds 0.0.0.0 inside a container; the probe runs in the
// same network namespace, so loopback reaches it.
func probeAddr(listen string) string {
	if listen == "" {
		return "127.0.0.1:8080"
	}

	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "127.0.0.1:8080"
	}

	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}
