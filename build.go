//go:build ignore

// build.go - CAN Pulse Build System
// Usage: go run build.go [-target=TARGET]
// Targets: all, server, scraper, vizgen, clean, test, release

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const module = "canpulse"

var (
	rootDir string
	distDir string

	// Commands under ./cmd, built into dist
	executables = []string{"server", "scraper", "vizgen"}

	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
)

func init() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(fmt.Sprintf("Failed to get current directory: %v", err))
	}
	rootDir = cwd
	distDir = filepath.Join(rootDir, "dist")

	if _, err := os.Stat(filepath.Join(rootDir, "go.mod")); os.IsNotExist(err) {
		panic(fmt.Sprintf("go.mod not found in %s. Run the build from the repository root.", rootDir))
	}
}

func main() {
	target := flag.String("target", "all", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	printHeader()
	startTime := time.Now()

	var err error
	switch *target {
	case "all":
		err = buildAll(*verbose, false)
	case "server", "scraper", "vizgen":
		err = buildExecutable(*target, *verbose, false)
	case "release":
		err = buildAll(*verbose, true)
	case "clean":
		err = clean(*verbose)
	case "test":
		err = runTests(*verbose)
	default:
		showHelp()
		os.Exit(1)
	}
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	printSuccess(fmt.Sprintf("Build completed in %s", time.Since(startTime).Round(time.Millisecond)))
}

func printHeader() {
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println(colorCyan + "        CAN Pulse - Build System          " + colorReset)
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println()
}

func printInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorBlue, colorReset, msg)
}

func printSuccess(msg string) {
	fmt.Printf("%s[SUCCESS]%s %s\n", colorGreen, colorReset, msg)
}

func printError(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", colorRed, colorReset, msg)
}

func buildAll(verbose, release bool) error {
	printInfo("Building all components...")

	if err := exec.Command("go", "version").Run(); err != nil {
		return fmt.Errorf("Go is not installed or not in PATH")
	}
	for _, name := range executables {
		if err := buildExecutable(name, verbose, release); err != nil {
			return err
		}
	}

	printSuccess("All components built successfully!")
	return nil
}

func buildExecutable(name string, verbose, release bool) error {
	printInfo(fmt.Sprintf("Building %s...", name))

	exeName := name
	if runtime.GOOS == "windows" {
		exeName += ".exe"
	}
	outputPath := filepath.Join(distDir, exeName)
	if err := os.MkdirAll(distDir, 0755); err != nil {
		return fmt.Errorf("failed to create dist directory: %w", err)
	}

	args := []string{"build"}
	if verbose {
		args = append(args, "-v")
	}
	ldflags := fmt.Sprintf("-X %s/pkg/contracts.BuildTime=%s -X %s/pkg/contracts.GitCommit=%s",
		module, time.Now().Format(time.RFC3339), module, gitCommit())
	if release {
		ldflags = "-s -w " + ldflags
		args = append(args, "-trimpath")
	}
	args = append(args, "-ldflags", ldflags)
	args = append(args, "-o", outputPath, "./cmd/"+name)

	cmd := exec.Command("go", args...)
	cmd.Dir = rootDir
	if verbose {
		fmt.Printf("Running: go %s\n", strings.Join(args, " "))
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to build %s: %w", name, err)
	}

	if info, err := os.Stat(outputPath); err == nil {
		sizeMB := float64(info.Size()) / 1024 / 1024
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", exeName, sizeMB))
	}
	return nil
}

func gitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

func clean(verbose bool) error {
	printInfo("Cleaning build artifacts and logs...")

	if err := os.RemoveAll(distDir); err != nil {
		return fmt.Errorf("failed to clean dist directory: %w", err)
	}

	logs, _ := filepath.Glob(filepath.Join(rootDir, "logs", "*.log"))
	for _, logFile := range logs {
		if verbose {
			fmt.Printf("  Removing: %s\n", logFile)
		}
		os.Remove(logFile)
	}

	printSuccess("Build artifacts cleaned")
	return nil
}

func runTests(verbose bool) error {
	printInfo(fmt.Sprintf("Running %s tests...", module))

	args := []string{"test", "-race"}
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, "./...")

	cmd := exec.Command("go", args...)
	cmd.Dir = rootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("Go tests failed: %w", err)
	}

	printSuccess("All tests passed")
	return nil
}

func showHelp() {
	fmt.Println("Usage: go run build.go [-target=TARGET] [-v]")
	fmt.Println()
	fmt.Println("Targets:")
	fmt.Println("  all               Build every command (default)")
	fmt.Println("  server            Build the HTTP server only")
	fmt.Println("  scraper           Build the extraction CLI only")
	fmt.Println("  vizgen            Build the view generator CLI only")
	fmt.Println("  release           Build stripped binaries")
	fmt.Println("  clean             Remove dist and log files")
	fmt.Println("  test              Run all tests with the race detector")
}
