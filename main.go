package main

import "chestnut/cmd"

func main() {
	cmd.Execute()
}
