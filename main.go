// main is the entry point of the debtboard CLI.
package main

import (
	"github.com/huangsam/debtboard/cmd"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseArchive()
	if err != nil {
		contract.LogFatal("debtboard failed", err)
	}
}
