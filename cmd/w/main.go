package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	wlang "github.com/Wicin-134/W"
)

const (
	appName     = "w"
	version     = "0.9"
	historyFile = ".w_history"
	promptMain  = ">>> "
	promptCont  = "... "
	configFile  = "w.yaml"
)

var banner = fmt.Sprintf("W %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`W %s

Usage:
  %s run <file.w>    Run a script.
  %s repl            Start the REPL.
  %s version         Print the version.

Options are read from %s in the current directory when present.
`, version, appName, appName, appName, configFile)
}

// loadConfig reads w.yaml from the working directory; absence means defaults.
func loadConfig() *wlang.Config {
	cfg, err := wlang.LoadConfig(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
		return wlang.DefaultConfig()
	}
	return cfg
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.w>\n", appName)
		return 2
	}
	ip := wlang.NewInterpreter(loadConfig())
	if err := ip.RunFile(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := wlang.NewInterpreter(loadConfig())
	ip.Input = linerReader{ln}

	for {
		block, ok := readBlock(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		code := strings.TrimSpace(block[0])
		if code == "" {
			continue
		}

		if strings.HasPrefix(code, ":") {
			if !replCommand(code) {
				return 0
			}
			continue
		}

		ip.ClearHalt()
		ip.RunLines(block)
		ln.AppendHistory(strings.Join(block, "; "))
	}
}

// replCommand handles ":" meta commands; it returns false to exit.
func replCommand(code string) bool {
	switch {
	case code == ":quit":
		return false
	case strings.HasPrefix(code, ":tokens "):
		src := strings.TrimPrefix(code, ":tokens ")
		toks, err := wlang.Tokenize(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(wlang.WrapErrorWithLine(err, src).Error()))
			return true
		}
		fmt.Println(wlang.FormatTokens(toks))
	default:
		fmt.Println("unknown command. Type :quit to exit.")
	}
	return true
}

// readBlock reads one top-level input. A func/while header switches to the
// continuation prompt and keeps reading until a "done" line, so blocks can be
// typed interactively the way they appear in files.
func readBlock(ln *liner.State) ([]string, bool) {
	first, err := ln.Prompt(promptMain)
	if errors.Is(err, io.EOF) {
		return nil, false
	}
	if err != nil {
		return []string{""}, true
	}

	lines := []string{first}
	trimmed := strings.TrimSpace(first)
	if !strings.HasPrefix(trimmed, "func ") && !strings.HasPrefix(trimmed, "while ") {
		return lines, true
	}

	for {
		line, err := ln.Prompt(promptCont)
		if errors.Is(err, io.EOF) {
			return lines, true
		}
		if err != nil {
			return lines, true
		}
		lines = append(lines, line)
		if strings.TrimSpace(line) == "done" {
			return lines, true
		}
	}
}

// linerReader lets the "input" command share the REPL's line editor.
type linerReader struct {
	ln *liner.State
}

func (r linerReader) ReadLine(prompt string) (string, error) {
	return r.ln.Prompt(prompt)
}
