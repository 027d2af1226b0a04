package main

import "photosift/cmd"

func main() {
	cmd.Execute()
}
