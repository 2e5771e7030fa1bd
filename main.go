package main

import (
	_ "embed"

	"github.com/keepnotes/keep-note-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
