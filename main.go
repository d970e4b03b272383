// main is the entry point of the radonrun CLI.
package main

import (
	"github.com/huangsam/radonrun/cmd"
	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("radonrun failed", err)
	}
}
