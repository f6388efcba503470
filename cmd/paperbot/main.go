package main

import "github.com/rustyeddy/paperbot/internal/cli"

func main() {
	cli.Execute()
}
