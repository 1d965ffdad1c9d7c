//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir   = "bin"
	coverOut = "coverage.out"
)

// binary name -> main package
var binaries = map[string]string{
	"pehlione-admin": "./cmd/web",
	"mockbackend":    "./cmd/tools/mockbackend",
	"ordersctl":      "./cmd/tools/ordersctl",
}

var Default = Build

type Run mg.Namespace

// Web starts the admin frontend. Uses air for hot reload when it is installed.
func (Run) Web() error {
	if _, err := exec.LookPath("air"); err == nil {
		return sh.RunV("air")
	}
	fmt.Println("air not found, using go run (install with: mage tools)")
	return sh.RunV("go", "run", "./cmd/web")
}

// Backend serves the order API from an in-memory sqlite database seeded
// with fake orders.
func (Run) Backend() error {
	env := map[string]string{}
	if os.Getenv("BACKEND_SEED") == "" {
		env["BACKEND_SEED"] = "60"
	}
	return sh.RunWithV(env, "go", "run", "./cmd/tools/mockbackend")
}

// Stack runs the mock backend and the admin frontend side by side.
func (Run) Stack() {
	mg.Deps(Run.Backend, Run.Web)
}

// Build compiles every binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}

	names := make([]string, 0, len(binaries))
	for name := range binaries {
		names = append(names, name)
	}
	sort.Strings(names)

	env := map[string]string{"CGO_ENABLED": "0"}
	for _, name := range names {
		out := filepath.Join(binDir, name+exeSuffix())
		fmt.Println("build", out)
		if err := sh.RunWithV(env, "go", "build", "-trimpath", "-ldflags=-s -w", "-o", out, binaries[name]); err != nil {
			return err
		}
	}
	return nil
}

func Test() error {
	return sh.RunV("go", "test", "-count=1", "./...")
}

// Race runs the tests with the race detector (needs cgo).
func Race() error {
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "1"}, "go", "test", "-race", "-count=1", "./...")
}

// Cover writes coverage.out and prints the per-function summary.
func Cover() error {
	if err := sh.RunV("go", "test", "-count=1", "-coverprofile="+coverOut, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func="+coverOut)
}

// Lint runs go vet, then golangci-lint when it is installed.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println("golangci-lint not found, skipped (install with: mage tools)")
		return nil
	}
	return sh.RunV("golangci-lint", "run", "--timeout=3m", "./...")
}

func Fmt() error {
	return sh.RunV("gofmt", "-s", "-w", "cmd", "internal", "pkg", "templates", "magefile.go")
}

// Check is the pre-push gate.
func Check() {
	mg.SerialDeps(Fmt, Lint, Test)
}

func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

func Clean() error {
	for _, p := range []string{binDir, coverOut, "tmp"} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}

// Tools installs air and golangci-lint into GOBIN.
func Tools() error {
	for _, pkg := range []string{
		"github.com/air-verse/air@latest",
		"github.com/golangci/golangci-lint/v2/cmd/golangci-lint@latest",
	} {
		if err := sh.RunV("go", "install", pkg); err != nil {
			return err
		}
	}
	return nil
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
