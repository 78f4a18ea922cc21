package main

import "github.com/francois-poidevin/flightboard/cli/cmd"

func main() {
	cmd.Execute()
}
