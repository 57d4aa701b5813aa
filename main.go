package main

import "termai/cmd"

func main() {
	cmd.Execute()
}
