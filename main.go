package main

import "github.com/hanak0/ggsweep/cmd"

func main() {
	cmd.Execute()
}
