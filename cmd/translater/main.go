package main

import "github.com/katelkum/translater/cmd/translater/cmd"

func main() {
	cmd.Execute()
}
