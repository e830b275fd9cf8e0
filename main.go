package main

import (
	"log"

	"market-analyzer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("market-analyzer: %v", err)
	}
}
