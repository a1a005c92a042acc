package main

import (
	"fmt"
	"os"
)

// @title        Contacts API
// @version      1.0
// @description  CRUD service for contacts with primary/secondary relationships.
// @BasePath     /
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
