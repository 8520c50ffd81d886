package main

import (
	cmd "github.com/kerbaras/recipebook/cmd/recipebook"
)

func main() {
	cmd.Execute()
}
