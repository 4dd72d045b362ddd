// Package main is the entry point for the server-price-alerts service.
package main

import (
	"os"

	"github.com/donaldgifford/server-price-alerts/cmd/server-price-alerts/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
