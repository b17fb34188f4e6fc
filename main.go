package main

import "diary-store/cmd"

func main() {
	cmd.Execute()
}
