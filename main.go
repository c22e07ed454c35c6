package main

import "Sampler/cmd"

func main() {
	cmd.Execute()
}
