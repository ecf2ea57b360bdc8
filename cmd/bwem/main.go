package main

import "github.com/arl/go-bwem/cmd/bwem/cmd"

func main() {
	cmd.Execute()
}
