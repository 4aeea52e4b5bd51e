package main

import "github.com/Skotchmaster/furnico/internal/cli"

func main() {
	cli.Execute()
}
