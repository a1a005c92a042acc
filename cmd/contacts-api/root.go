package main

import (
	"github.com/spf13/cobra"
)

const serviceName = "contacts-api"

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:           serviceName,
	Short:         "HTTP API for managing contacts",
	Long:          "contacts-api serves create, read, update and delete operations for contacts stored in MongoDB.",
	SilenceUsage:  true,
	SilenceErrors: true,
}
