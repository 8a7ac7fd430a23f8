package main

import (
	"os"

	"github.com/quizling/quizling/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
