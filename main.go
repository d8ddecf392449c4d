package main

import (
	"os"

	"github.com/blacktop/hubcast/cmd"
	"github.com/blacktop/hubcast/internal/logutil"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logutil.Errorf("%v", err)
		os.Exit(1)
	}
}
