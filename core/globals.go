package core

import "github.com/huangsam/debtboard/internal/outwriter"

// writer renders every command result in the configured output format.
var writer = outwriter.NewOutWriter()
