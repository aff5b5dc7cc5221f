package main

import "rados-compare/cmd"

func main() {
	cmd.Execute()
}
