package main

import (
	"github.com/afwatch/afwatch/cmd"
)

func main() {
	cmd.Execute()
}
