package main

import "github.com/stonksbot/stonksbot/cmd"

func main() {
	cmd.Execute()
}
