package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
)

// statusHandler writes a plain-text http response with information about the
// application status, operating environment, version, and where the instance
// can be reached.
func (app *application) statusHandler(w http.ResponseWriter, r *http.Request) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	fmt.Fprintln(w, "status: available")
	fmt.Fprintf(w, "environment: %s\n", app.config.Env)
	fmt.Fprintf(w, "version: %s\n", version)
	fmt.Fprintf(w, "hostname: %s\n", hostname)
	fmt.Fprintf(w, "address: %s\n", localIP())
	fmt.Fprintf(w, "port: %d\n", app.config.HTTP.Port)
}

// localIP returns the first non-loopback IPv4 address of the host, or
// "unknown" when none is configured.
func localIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "unknown"
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}

	return "unknown"
}
