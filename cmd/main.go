package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/ostafen/carver/cmd/cmd"
	"github.com/ostafen/carver/internal/env"
	"github.com/ostafen/carver/internal/errs"
)

func main() {
	PrintLogo()

	if err := cmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "[-] ERROR : %s\n", err)
		os.Exit(errs.Classify(err).ExitCode())
	}
}

func PrintLogo() {
	fmt.Println("  ___ __ _ _ ____   _____ _ __")
	fmt.Println(" / __/ _` | '__\\ \\ / / _ \\ '__|")
	fmt.Println("| (_| (_| | |   \\ V /  __/ |")
	fmt.Println(" \\___\\__,_|_|    \\_/ \\___|_|")
	fmt.Println()
	fmt.Println("Signature based file carving tool")
	fmt.Println()
	fmt.Printf("Version:   %s\n", env.Version)
	fmt.Printf("Commit:    %s\n", env.CommitHash)
	fmt.Printf("Build Time: %s\n", env.BuildTime)
	fmt.Println(" ")
}
