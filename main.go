package main

import "github.com/insightdelivered/upi-statement-parser/cmd"

func main() {
	cmd.Execute()
}
