package main

import "peluqueria/internal/cli"

func main() {
	cli.Execute()
}
