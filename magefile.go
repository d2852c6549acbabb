//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// Build compiles every command into ./bin
func Build() error {
	mg.Deps(BuildEvdisplay, BuildEvinfo, BuildEvsynth)
	fmt.Println("Compilation finished")
	return nil
}

func BuildEvdisplay() error {
	return buildCommand("evdisplay")
}

func BuildEvinfo() error {
	return buildCommand("evinfo")
}

func BuildEvsynth() error {
	return buildCommand("evsynth")
}

// Test runs the unit tests of every package
func Test() error {
	return goCommand("test", "./...")
}

// Demo writes a synthetic file and displays its first event
func Demo() error {
	mg.Deps(Build)
	if err := run("./bin/evsynth", "-o", "demo.h5", "-n", "5"); err != nil {
		return err
	}
	return run("./bin/evdisplay", "-e", "0", "-c", "pidq", "-html", "demo.html", "-png", "demo.png", "demo.h5")
}

func Clean() error {
	fmt.Println("Removing ./bin")
	return os.RemoveAll("bin")
}

// hdf5 needs cgo, the flags pointing to the library are forwarded
func buildCommand(name string) error {
	fmt.Printf("Building %s executable...\n", name)
	return goCommand("build", "-o", "./bin/"+name, "./"+name)
}

func goCommand(args ...string) error {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
