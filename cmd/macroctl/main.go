package main

import "github.com/KirkDiggler/macro-relay/cmd/macroctl/cmd"

func main() {
	cmd.Execute()
}
