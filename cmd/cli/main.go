package main

import "tcpecho/cmd/cli/command"

func main() {
	command.Execute()
}
