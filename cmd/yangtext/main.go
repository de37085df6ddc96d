// Command yangtext converts between the curly brace text syntax and XML
// for YANG modeled data.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
