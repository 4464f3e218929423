package main

import (
	"os"

	"github.com/jhoicas/pos-backoffice-api/cmd/posctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
