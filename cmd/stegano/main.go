package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Color printers
	infoColor    = color.New(color.FgBlue).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()

	// Status lines go to stderr so that payloads and reports on stdout stay clean.
	stdout io.Writer = os.Stdout
	stderr io.Writer = color.Error
)

func printInfo(format string, args ...any) {
	fmt.Fprintf(stderr, "%s %s\n", infoColor("[*]"), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) {
	fmt.Fprintf(stderr, "%s %s\n", successColor("[+]"), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintf(stderr, "%s %s\n", warningColor("[!]"), fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintf(stderr, "%s %s\n", errorColor("[-]"), fmt.Sprintf(format, args...))
}

const usage = `Usage:
  stegano embed    -in <cover> -out <stego.png|bmp|tiff> (-msg <text> | -file <path>) [-zstd] [-shuffle -seed n]
  stegano extract  -in <stego> [-out <path>] [-zstd] [-shuffle -seed n]
  stegano analyze  -in <image> [-channel r|g|b] [-margin pct] [-json]
  stegano capacity -in <image>
  stegano gen      -bits <n> [-text] [-out <path>]
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 1
	}
	var err error
	switch args[0] {
	case "embed":
		err = runEmbed(ctx, args[1:])
	case "extract":
		err = runExtract(ctx, args[1:])
	case "analyze":
		err = runAnalyze(ctx, args[1:])
	case "capacity":
		err = runCapacity(args[1:])
	case "gen":
		err = runGen(args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(stderr, usage)
		return 0
	default:
		printError("unknown command %q", args[0])
		fmt.Fprint(stderr, usage)
		return 1
	}
	if err != nil {
		printError("%v", err)
		var ec exitCoder
		if errors.As(err, &ec) {
			return ec.ExitCode()
		}
		return 1
	}
	return 0
}

type exitCoder interface {
	ExitCode() int
}
