package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ericogr/squadxp/internal/config"
	"github.com/ericogr/squadxp/internal/constants"
)

func main() {
	var env config.Env
	if err := config.ParseEnv(&env); err != nil {
		os.Exit(1)
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(probeURL(env.Addr))
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}

// probeURL turns a listen address such as ":8080" or "0.0.0.0:8080" into
// a loopback URL for the health route.
func probeURL(addr string) string {
	host, port := "127.0.0.1", "8080"
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		if h := addr[:i]; h != "" && h != "0.0.0.0" && h != "[::]" {
			host = h
		}
		if p := addr[i+1:]; p != "" {
			port = p
		}
	}
	return "http://" + host + ":" + port + constants.RouteHealth
}
