package main

import (
	"os"

	"github.com/abhiraj070/RuleMind/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
