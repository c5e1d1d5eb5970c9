package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lts",
	Short: "Thorlabs LTS stage control CLI",
	Long:  `A command line interface for driving Thorlabs LTS-family long-travel motorized stages.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
