package main

import (
	"log"

	"github.com/asakaze/photo-vault/cmd"
	"github.com/asakaze/photo-vault/config"
)

func main() {
	log.Printf("photo vault %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
