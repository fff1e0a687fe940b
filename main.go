package main

import "github.com/vibast-solutions/ms-go-school-fees/cmd"

func main() {
	cmd.Execute()
}
