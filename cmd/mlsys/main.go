// Command mlsys evaluates a learner on an ARFF dataset.
//
//	mlsys -L baseline -A iris.arff -E cross 10
package main

import (
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
