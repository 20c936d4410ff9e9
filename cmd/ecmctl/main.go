package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"ecm-catalogue-service/internal/adapters/primary/cli"
)

func main() {
	log.SetLevel(log.WarnLevel)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
