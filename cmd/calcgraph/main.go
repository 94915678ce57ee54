package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/cmd/calcgraph/version"
	"go.polydawn.net/calcgraph/config"
	"go.polydawn.net/calcgraph/lib/errcat"
)

func main() {
	ctx := context.Background()
	bhv := Main(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	err := bhv.action()
	exitCode := api.ExitCodeForError(err)
	switch {
	case err == nil:
	case exitCode == api.ExitInternal:
		// Errors that aren't in a known category should be
		// logged in preparation for a bug report.
		reportBug(os.Stderr, err)
	default:
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}
	os.Exit(exitCode)
}

// kingpin reads a bare "-" as a short flag, so it goes through the
// parser disguised and is put back afterwards.
const stdinArgToken = "\x00stdin"

func hideStdinArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == "-" {
			arg = stdinArgToken
		}
		out[i] = arg
	}
	return out
}

func restoreStdinArg(arg string) string {
	if arg == stdinArgToken {
		return "-"
	}
	return arg
}

func reportBug(stderr io.Writer, caught error) {
	logPath, saveErr := saveErrorReport(caught, time.Now())
	var saveMsg string
	if saveErr == nil {
		saveMsg = fmt.Sprintf("We've logged the full error to a file: %q.  Please include this in the report.", logPath)
	} else {
		saveMsg = fmt.Sprintf("Additionally, we were unable to save a full log of the problem (\"%s\").", saveErr)
	}
	fmt.Fprintf(stderr,
		"calcgraph encountered a serious issue and was unable to complete your request!\n"+
			"Please file an issue to help us fix it.\n"+
			saveMsg+"\n"+
			"\n"+
			"This is the short version of the problem:\n"+
			"%s\n",
		caught)
}

func saveErrorReport(caught error, at time.Time) (string, error) {
	logFile, err := ioutil.TempFile(os.TempDir(), "calcgraph-error-report-")
	if err != nil {
		return "", err
	}
	defer logFile.Close()
	fmt.Fprintf(logFile, "calcgraph error report\n")
	fmt.Fprintf(logFile, "======================\n")
	fmt.Fprintf(logFile, "Date: %s\n", at)
	fmt.Fprintf(logFile, "Commit: %s\n", version.GitCommit)
	fmt.Fprintf(logFile, "\n")
	fmt.Fprintf(logFile, "Full error:\n")
	fmt.Fprintf(logFile, "-----------\n")
	fmt.Fprintf(logFile, "%s\n", caught)
	if e, ok := caught.(*errcat.Error); ok && len(e.Details) > 0 {
		fmt.Fprintf(logFile, "\nDetails:\n")
		for k, v := range e.Details {
			fmt.Fprintf(logFile, "  %s: %s\n", k, v)
		}
	}
	return logFile.Name(), nil
}

// Holder type which makes it easier for us to inspect
//  the args parser result in test code before running logic.
type behavior struct {
	parsedArgs interface{}
	action     func() error
}

type format string

const (
	format_Ansi = "ansi"
	format_Json = "json"
)

func Main(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) behavior {
	// CLI boilerplate.
	app := kingpin.New("calcgraph", "Build graphing calculator documents and save them for sharing.")
	app.HelpFlag.Short('h')
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	// Args struct defs and flag declarations.
	baseArgs := struct {
		Format string
		Dotenv []string
	}{}
	app.Flag("format", "Output api format").
		Default(format_Ansi).
		EnumVar(&baseArgs.Format,
			format_Ansi, format_Json)
	app.Flag("dotenv", "Load environment variables from this file before reading config (repeatable; default '.env' if present)").
		StringsVar(&baseArgs.Dotenv)
	// setup is shared by every command that touches config or logs.
	setup := func() (printer, error) {
		if err := config.LoadDotenv(baseArgs.Dotenv...); err != nil {
			return nil, err
		}
		lvl, err := config.GetLogLevel()
		if err != nil {
			return nil, err
		}
		return setupPrinter(format(baseArgs.Format), lvl, stdout, stderr), nil
	}
	bhvs := map[string]behavior{}
	var positionals []*string // restored by restoreStdinArg after parsing.
	{
		cmdState := app.Command("state", "Print the calculator state of a graph document.")
		argsState := struct {
			DocPath string
		}{}
		cmdState.Arg("document", "Path to graph document file ('-' for stdin).").
			Required().
			StringVar(&argsState.DocPath)
		positionals = append(positionals, &argsState.DocPath)
		bhvs[cmdState.FullCommand()] = behavior{&argsState, func() error {
			printer, err := setup()
			if err != nil {
				return err
			}
			return StateCmd(argsState.DocPath, stdin, printer)
		}}
	}
	{
		cmdPayload := app.Command("payload", "Print the save request body for a graph document, without sending it.")
		argsPayload := struct {
			DocPath string
		}{}
		cmdPayload.Arg("document", "Path to graph document file ('-' for stdin).").
			Required().
			StringVar(&argsPayload.DocPath)
		positionals = append(positionals, &argsPayload.DocPath)
		bhvs[cmdPayload.FullCommand()] = behavior{&argsPayload, func() error {
			printer, err := setup()
			if err != nil {
				return err
			}
			return PayloadCmd(argsPayload.DocPath, stdin, printer)
		}}
	}
	{
		cmdSave := app.Command("save", "Save a graph document and print its public URL.")
		argsSave := struct {
			DocPath string
		}{}
		cmdSave.Arg("document", "Path to graph document file ('-' for stdin).").
			Required().
			StringVar(&argsSave.DocPath)
		positionals = append(positionals, &argsSave.DocPath)
		bhvs[cmdSave.FullCommand()] = behavior{&argsSave, func() error {
			printer, err := setup()
			if err != nil {
				return err
			}
			return SaveCmd(ctx, argsSave.DocPath, stdin, printer)
		}}
	}
	{
		cmdTex := app.Command("tex", "Convert source notation to calculator markup.")
		argsTex := struct {
			Source string
		}{}
		cmdTex.Arg("source", "Expression in source notation, e.g. 'x^2 + 1/2'.").
			Required().
			StringVar(&argsTex.Source)
		positionals = append(positionals, &argsTex.Source)
		bhvs[cmdTex.FullCommand()] = behavior{&argsTex, func() error {
			printer, err := setup()
			if err != nil {
				return err
			}
			return TexCmd(argsTex.Source, printer)
		}}
	}
	{
		cmdVersion := app.Command("version", "Print build information.")
		bhvs[cmdVersion.FullCommand()] = behavior{nil, func() error {
			printer := setupPrinter(format(baseArgs.Format), config.DefaultLogLevel, stdout, stderr)
			printer.printVersion()
			return nil
		}}
	}

	// Parse!
	parsedCmdStr, err := app.Parse(hideStdinArgs(args[1:]))
	if err != nil {
		return behavior{
			parsedArgs: err,
			action: func() error {
				return errcat.Errorf(api.ErrUsage, "error parsing args: %s", err)
			},
		}
	}
	// Return behavior named by the command and subcommand strings.
	if bhv, ok := bhvs[parsedCmdStr]; ok {
		for _, s := range positionals {
			*s = restoreStdinArg(*s)
		}
		return bhv
	}
	panic("unreachable, cli parser must error on unknown commands")
}
