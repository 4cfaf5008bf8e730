package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// colorize wraps s in the given ANSI color unless NO_COLOR is set
// (https://no-color.org), so CI logs stay free of escape sequences.
func colorize(color, s string) string {
	if os.Getenv("NO_COLOR") != "" {
		return s
	}
	return color + s + colorReset
}

func PrintInfo(format string, a ...interface{}) {
	fmt.Println(colorize(colorBlue, "ℹ "+fmt.Sprintf(format, a...)))
}

func PrintSuccess(format string, a ...interface{}) {
	fmt.Println(colorize(colorGreen, "✓ "+fmt.Sprintf(format, a...)))
}

func PrintWarning(format string, a ...interface{}) {
	fmt.Println(colorize(colorYellow, "⚠ "+fmt.Sprintf(format, a...)))
}

func PrintError(format string, a ...interface{}) {
	fmt.Println(colorize(colorRed, "✗ "+fmt.Sprintf(format, a...)))
}

func PrintHeader(title string) {
	fmt.Printf("\n%s\n", colorize(colorYellow, fmt.Sprintf("=== %s ===", title)))
}

// checkHostile rejects command arguments carrying shell metacharacters. The
// devtool never invokes a shell itself, but some of these arguments end up in
// docker compose and psql invocations that might.
func checkHostile(inputs ...string) error {
	for _, s := range inputs {
		if strings.ContainsAny(s, "\n\r") {
			return fmt.Errorf("hostile input detected: newlines or carriage returns")
		}
		if strings.Contains(s, "\x00") {
			return fmt.Errorf("hostile input detected: null byte")
		}
		for _, p := range []string{"|", "`", "$(", "&&", "||", ">", "<"} {
			if strings.Contains(s, p) {
				return fmt.Errorf("hostile input detected: pattern %q in %q", p, s)
			}
		}
	}
	return nil
}

// getCommandOutput runs a command and returns its trimmed stdout.
func getCommandOutput(name string, args ...string) (string, error) {
	if err := checkHostile(append([]string{name}, args...)...); err != nil {
		return "", err
	}
	// #nosec G204 - arguments are vetted by checkHostile
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// runCommand runs a command silently, discarding output.
func runCommand(name string, args ...string) error {
	if err := checkHostile(append([]string{name}, args...)...); err != nil {
		return err
	}
	// #nosec G204 - arguments are vetted by checkHostile
	return exec.Command(name, args...).Run()
}

// runCommandVerbose runs a command with output wired to the terminal.
func runCommandVerbose(name string, args ...string) error {
	if err := checkHostile(append([]string{name}, args...)...); err != nil {
		return err
	}
	// #nosec G204 - arguments are vetted by checkHostile
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
