package main

import "userapi/cmd/userctl/command"

func main() {
	command.Execute()
}
