// Command nhplus manages the records of a nursing home: patients,
// caregivers, treatments, medicines and the users allowed to log in.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, styles.failure.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
