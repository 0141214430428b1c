package main

import "archeologist/cmd/archeologist-cli/cmd"

func main() {
	cmd.Execute()
}
