// cmd/seqopt/main.go
package main

import (
	"seqopt/internal/app"
	"seqopt/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
