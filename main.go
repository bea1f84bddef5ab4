package main

import "github.com/twiced-technology-gmbh/taskdeck/cmd"

func main() {
	cmd.Execute()
}
