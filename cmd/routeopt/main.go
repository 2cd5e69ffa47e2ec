package main

import (
	"crew-route-service/cmd/routeopt/cmd"
	"os"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
