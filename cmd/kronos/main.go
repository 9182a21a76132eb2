// Command kronos is the interpreter front end: it runs scripts, starts an
// interactive REPL, and exposes the lexer and parser stages for inspection.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/nedanwr/kronos"
)

const (
	appName     = "kronos"
	historyFile = ".kronos_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var errRed = color.New(color.FgRed)

func init() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		errRed.DisableColor()
	}
}

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "the Kronos scripting language"
	app.Version = kronos.Version
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "Run a script",
			ArgsUsage: "<file.kr>",
			Action:    cmdRun,
		},
		{
			Name:      "lex",
			Usage:     "Tokenize a script and print the token table",
			ArgsUsage: "<file.kr>",
			Action:    cmdLex,
		},
		{
			Name:      "parse",
			Usage:     "Parse a script and print the statement tree",
			ArgsUsage: "<file.kr>",
			Action:    cmdParse,
		},
		{
			Name:   "repl",
			Usage:  "Start the interactive REPL",
			Action: cmdRepl,
		},
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		errRed.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readSource(ctx *cli.Context) (string, error) {
	if ctx.NArg() < 1 {
		return "", fmt.Errorf("usage: %s %s <file.kr>", appName, ctx.Command.Name)
	}
	src, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return "", fmt.Errorf("%s: cannot read %s: %v", appName, ctx.Args().First(), err)
	}
	return string(src), nil
}

func cmdRun(ctx *cli.Context) error {
	src, err := readSource(ctx)
	if err != nil {
		return err
	}
	if err := kronos.Run(src, os.Stdout); err != nil {
		return kronos.WrapErrorWithSource(err, src)
	}
	return nil
}

func cmdLex(ctx *cli.Context) error {
	src, err := readSource(ctx)
	if err != nil {
		return err
	}
	toks, err := kronos.NewLexer(src).Scan()
	if err != nil {
		return kronos.WrapErrorWithSource(err, src)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Type", "Text", "Indent"})
	table.SetBorder(false)
	for i, tok := range toks {
		indent := ""
		if tok.Type == kronos.INDENT {
			indent = strconv.Itoa(tok.Indent)
		}
		text := tok.Text
		if tok.Type == kronos.NEWLINE {
			text = `\n`
		}
		table.Append([]string{strconv.Itoa(i), tok.Type.String(), text, indent})
	}
	table.Render()
	return nil
}

func cmdParse(ctx *cli.Context) error {
	src, err := readSource(ctx)
	if err != nil {
		return err
	}
	stmts, err := kronos.Parse(src)
	if err != nil {
		return kronos.WrapErrorWithSource(err, src)
	}
	fmt.Print(kronos.DumpProgram(stmts))
	return nil
}

func cmdRepl(_ *cli.Context) error {
	fmt.Printf("Kronos %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n",
		kronos.Version)

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

	ip := kronos.NewInterpreter()

	for {
		code, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return nil
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return nil
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		if err := ip.RunSource(code); err != nil {
			errRed.Fprintln(os.Stderr, kronos.WrapErrorWithSource(err, code))
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readStatement collects one input unit. A line ending in ':' opens a block,
// which continuation lines extend until an empty line closes it.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", true
		}

		if b.Len() == 0 {
			if !strings.HasSuffix(strings.TrimRight(line, " \t"), ":") {
				return line, true
			}
			b.WriteString(line)
			continue
		}

		if strings.TrimSpace(line) == "" {
			return b.String(), true
		}
		b.WriteByte('\n')
		b.WriteString(line)
	}
}
