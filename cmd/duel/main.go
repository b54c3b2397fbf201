package main

import "github.com/battlesnakeio/duel/cmd/duel/commands"

func main() {
	commands.Execute()
}
