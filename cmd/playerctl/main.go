package main

import "github.com/pongarena/playerhub/internal/cli"

func main() {
	cli.Execute()
}
