// The trustcheck command reports trust-marked calls into package unsafestorage
// that do not document the invariant they rely on.
//
// Usage:
//
//	trustcheck [-marker=invariant:] [-generated=true] packages...
//
// It can also run under go vet:
//
//	go vet -vettool=$(which trustcheck) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/andrewgazelka/unsafe-storage/trustcheck"
)

func main() { singlechecker.Main(trustcheck.Analyzer) }
