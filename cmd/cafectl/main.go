package main

import "github.com/cafeorder/cafe-client/cmd/cafectl/commands"

func main() {
	commands.Execute()
}
