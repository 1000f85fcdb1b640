package main

import "github.com/dustinbowers/chip8vm/cmd"

func main() {
	cmd.Execute()
}
