package main

import (
	"github.com/custodia-labs/docqa/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
