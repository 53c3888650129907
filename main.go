package main

import "github.com/ygelfand/studentctl/cmd"

func main() {
	cmd.Execute()
}
