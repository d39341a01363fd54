//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runBinary executes the built CLI with the given arguments.
func runBinary(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", binName, args, err)
	}
	return nil
}

// Score runs mechanism scoring on the default data files.
func Score() error {
	mg.Deps(Build)
	return runBinary("score",
		"--mechanisms", filepath.Join("data", "drug_mechanisms.csv"),
		"--drugs", filepath.Join("data", "drug_list.csv"),
		"--broad-genes", filepath.Join("data", "ad_genes.csv"))
}

// Mine runs literature mining for the scored drugs.
func Mine() error {
	mg.Deps(Build)
	return runBinary("mine")
}

// Rank produces the final blended candidate ranking.
func Rank() error {
	mg.Deps(Build)
	return runBinary("rank")
}
