package main

import (
	"os"

	"github.com/solscan-io/solscan/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
