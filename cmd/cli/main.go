// sdep - sort dated lines inside a time window
//
// sdep reads lines that start with a date-time stamp, keeps the ones that fall
// inside a time window and prints them in chronological order.
package main

import (
	"os"

	"github.com/ccollicutt/sdep/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
