package main

import (
	"os"

	"github.com/quietpush/fcmreceiver/cmd/fcmlisten/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
