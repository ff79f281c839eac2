package main

import "github.com/chriserin/catchr/cmd"

func main() {
	cmd.Execute()
}
