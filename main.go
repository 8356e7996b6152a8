package main

import "commas/internal/cli"

func main() {
    cli.Execute()
}
