package main

import (
	"log"
	"os"

	"github.com/viljami/malli/internal/cmd"
)

func main() {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal("failed to determine working directory")
	}

	err = cmd.Run(cmd.Settings{
		WorkingDir: wd,
	})

	if err != nil {
		log.Fatal(err.Error())
	}
}
