// Package main is the entry point for the spa CLI client.
package main

import (
	"github.com/donaldgifford/server-price-alerts/cmd/spa/cmd"
)

func main() {
	cmd.Execute()
}
