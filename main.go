package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/fatih/color"
	"github.com/pontaoski/cts/ast"
	"github.com/pontaoski/cts/codegen"
	"github.com/pontaoski/cts/compiler"
	"github.com/pontaoski/cts/config"
	"github.com/pontaoski/cts/errors"
	"github.com/pontaoski/cts/lexer"
	"github.com/pontaoski/cts/parser"
	"github.com/pontaoski/cts/types"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/cts", "main")

// logLevel is the threshold unless --verbose is given.
const logLevel = capnslog.INFO

var errNoInput = stderrors.New("No input file provided as argument")

var buildFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "where to write the module (default: " + codegen.DefaultOutput + ")",
	},
	&cli.BoolFlag{
		Name:  "dump",
		Usage: "print the module to stdout",
	},
	&cli.BoolFlag{
		Name:  "library",
		Usage: "embed type information; with --link, build a shared object",
	},
	&cli.BoolFlag{
		Name:  "link",
		Usage: "run clang on the module",
	},
}

func setupLogging(verbose bool) {
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, verbose))
	if verbose {
		capnslog.SetGlobalLogLevel(capnslog.DEBUG)
	} else {
		capnslog.SetGlobalLogLevel(logLevel)
	}
}

func readSource(c *cli.Context) (string, string, error) {
	file := c.Args().First()
	if file == "" {
		return "", "", errNoInput
	}
	data, err := os.ReadFile(file)
	if err != nil {
		plog.Errorf("Failed to open file: %s", file)
		return "", "", err
	}
	return file, string(data), nil
}

func build(c *cli.Context) error {
	mod, found, err := config.Load(config.Filename)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", config.Filename, err)
	}
	if found {
		plog.Debugf("using %s for package %s", config.Filename, mod.Package)
	}

	files := c.Args().Slice()
	if len(files) == 0 && mod.Source != "" {
		files = []string{mod.Source}
	}
	if len(files) == 0 {
		return errNoInput
	}

	opts := compiler.Options{TypeInfo: c.Bool("library")}

	if len(files) > 1 {
		if c.String("output") != "" || c.Bool("dump") || c.Bool("link") {
			return stderrors.New("--output, --dump and --link take a single input file")
		}
		if err := compiler.BuildFiles(c.Context, files, opts); err != nil {
			return err
		}
		plog.Info("Compilation successful")
		return nil
	}

	out := c.String("output")
	if out == "" {
		out = mod.Output
	}

	res, err := compiler.BuildFile(files[0], out, opts)
	if err != nil {
		return err
	}

	if c.Bool("dump") {
		fmt.Print(res.Generator.Module().String())
	}

	if c.Bool("link") {
		name := mod.Package
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(files[0]), filepath.Ext(files[0]))
		}
		if err := link(out, name, c.Bool("library")); err != nil {
			return err
		}
	}

	plog.Info("Compilation successful")
	return nil
}

var kindColors = map[types.TokenKind]*color.Color{
	types.KEYWORD: color.New(color.FgMagenta, color.Bold),
	types.IDENT:   color.New(color.FgCyan),
	types.NUMBER:  color.New(color.FgYellow),
	types.SYMBOL:  color.New(color.FgWhite),
	types.UNKNOWN: color.New(color.FgRed, color.Bold),
}

func printTokens(toks []types.Token) {
	for _, tok := range toks {
		kind := kindColors[tok.Kind].Sprintf("%-10s", tok.Kind)
		fmt.Printf("%d:%d\t%s %q\n", tok.Location.From.Line, tok.Location.From.Column, kind, tok.Literal)
	}
}

func reportError(c *cli.Context, err error) {
	if err == nil {
		return
	}

	plog.Error(err)

	var se errors.StageError
	if c.Bool("verbose") && stderrors.As(err, &se) {
		tracerr.PrintSourceColor(se.Err)
	}

	os.Exit(1)
}

func main() {
	app := &cli.App{
		Name:      "cts",
		Usage:     "compile a cts source file to LLVM IR",
		ArgsUsage: "<file>",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every stage, print stack traces for errors",
			},
		}, buildFlags...),
		Before: func(c *cli.Context) error {
			setupLogging(c.Bool("verbose"))
			return nil
		},
		Action:         build,
		ExitErrHandler: reportError,
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "init a directory",
				ArgsUsage: "<package> [source]",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return stderrors.New("no module name provided")
					}
					mod := config.Default()
					mod.Package = name
					mod.Source = c.Args().Get(1)

					if err := config.Save(config.Filename, mod); err != nil {
						return fmt.Errorf("error creating %s: %w", config.Filename, err)
					}
					return nil
				},
			},
			{
				Name:      "build",
				Usage:     "build one or more files",
				ArgsUsage: "[files...]",
				Flags:     buildFlags,
				Action:    build,
			},
			{
				Name:      "tokens",
				Usage:     "list the tokens of a file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					_, src, err := readSource(c)
					if err != nil {
						return err
					}
					printTokens(lexer.Tokenize(src))
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "print the syntax tree of a file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					file, src, err := readSource(c)
					if err != nil {
						return err
					}
					fn, err := parser.NewParser(lexer.NewLexer(strings.NewReader(src), file)).Parse()
					if err != nil {
						return errors.StageError{Stage: errors.Parsing, Err: tracerr.Wrap(err)}
					}
					return ast.Fprint(os.Stdout, fn)
				},
			},
			{
				Name:      "typeinfo",
				Usage:     "dump typeinfo from a compiled module",
				ArgsUsage: "<file.ll|file.so>",
				Action: func(c *cli.Context) error {
					file := c.Args().Get(0)
					if file == "" {
						return errNoInput
					}
					data, err := codegen.GetTypeInfoFromFile(file)
					if err != nil {
						return err
					}
					repr.Println(data)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
