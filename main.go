package main

import "copdcare/cmd"

func main() {
	cmd.Execute()
}
