package main

import "github.com/dorapulse/dorapulse/cmd"

func main() {
	cmd.Execute()
}
