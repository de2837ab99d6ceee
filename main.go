package main

import "cityfix-client/cmd"

func main() {
	cmd.Run()
}
