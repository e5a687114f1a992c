package main

import "github.com/getsavvyinc/pdfqa-cli/cmd"

func main() {
	cmd.Execute()
}
