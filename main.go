package main

import "njangitech_backend/internals/cli"

func main() {
	cli.Execute()
}
