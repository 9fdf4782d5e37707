// Command facility administra animales, dueños, boxes y tratamientos de la
// instalación desde la terminal.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
