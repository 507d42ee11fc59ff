//go:build cli
// +build cli

package main

import (
	_ "toolledger.GO/custom"

	"toolledger.GO/cmd"
	"toolledger.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
