package main

import "l10n-checker/internal/cli"

func main() {
	cli.Execute()
}
