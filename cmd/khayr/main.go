package main

import "github.com/khayr-gifts/khayr/internal/cli"

func main() {
	cli.Execute()
}
