package main

import (
	"github.com/pgschema/pgdumpsort/cmd"
)

func main() {
	cmd.Execute()
}
