package main

import "github.com/timvw/ticket-eval/cmd"

func main() {
	cmd.Execute()
}
