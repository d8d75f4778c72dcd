package main

import "github.com/jonaslq/vattenkraft-scraper/cmd"

func main() {
	cmd.Execute()
}
