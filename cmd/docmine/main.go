package main

import "github.com/docmineai/docmine/internal/cli"

func main() {
	cli.Execute()
}
