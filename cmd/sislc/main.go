// sislc converts between SISL text and JSON or XML documents.
//
// The two primary modes mirror each other: --dumps reads a JSON (or,
// with --xml, an XML) document and writes SISL; --loads reads SISL and
// writes JSON (or XML). With --max-length, --dumps splits the output
// into fragments small enough to fit the given byte budget and emits
// them as a JSON array of strings; --loads accepts such an array and
// merges the fragments back before converting.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/sisl-format/sisl/sisl"
	"github.com/sisl-format/sisl/sislxml"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			fmt.Fprintf(os.Stderr, "error: %v\n", errors.Unwrap(err))
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(3)
	}
}

// exitError carries the process exit code alongside the underlying
// error. Data errors (bad SISL, bad JSON, bad XML, budget too small)
// exit 2; everything unexpected exits 3.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

func dataError(err error) error {
	return &exitError{code: 2, err: err}
}

func run() error {
	var (
		dumps      bool
		loads      bool
		xmlMode    bool
		maxLength  int
		inputPath  string
		outputPath string
		prettyOut  bool
		configPath string
		verbose    bool
	)

	flagSet := pflag.NewFlagSet("sislc", pflag.ContinueOnError)
	flagSet.BoolVar(&dumps, "dumps", false, "convert JSON (or XML with --xml) to SISL")
	flagSet.BoolVar(&loads, "loads", false, "convert SISL to JSON (or XML with --xml)")
	flagSet.BoolVar(&xmlMode, "xml", false, "use XML instead of JSON on the document side")
	flagSet.IntVar(&maxLength, "max-length", 0, "split SISL output into fragments of at most N bytes")
	flagSet.StringVar(&inputPath, "input", "", "read input from this file instead of stdin")
	flagSet.StringVar(&outputPath, "output", "", "write output to this file instead of stdout")
	flagSet.BoolVar(&prettyOut, "pretty", false, "pretty-print JSON output")
	flagSet.StringVar(&configPath, "config", "", "load defaults from a TOML config file")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			flagSet.PrintDefaults()
			return nil
		}
		return dataError(err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		fmt.Println("usage: sislc --dumps|--loads [options]")
		flagSet.PrintDefaults()
		return nil
	}

	if configPath != "" {
		cfg, err := loadFileConfig(configPath)
		if err != nil {
			return err
		}
		if !flagSet.Changed("pretty") {
			prettyOut = cfg.Pretty
		}
		if !flagSet.Changed("max-length") && cfg.MaxLength > 0 {
			maxLength = cfg.MaxLength
		}
		if !flagSet.Changed("verbose") && cfg.LogLevel == "debug" {
			verbose = true
		}
	}

	logger := newLogger(verbose)

	if dumps == loads {
		return dataError(errors.New("exactly one of --dumps or --loads is required"))
	}
	if loads && flagSet.Changed("max-length") {
		return dataError(errors.New("--max-length is only valid with --dumps"))
	}

	input, err := readInput(inputPath)
	if err != nil {
		return dataError(err)
	}
	logger.Debug().Int("bytes", len(input)).Msg("read input")

	var output string
	if dumps {
		output, err = runDumps(logger, input, xmlMode, maxLength)
	} else {
		output, err = runLoads(logger, input, xmlMode, prettyOut)
	}
	if err != nil {
		return err
	}

	return writeOutput(outputPath, output)
}

func runDumps(logger zerolog.Logger, input []byte, xmlMode bool, maxLength int) (string, error) {
	var v *sisl.Value
	var err error
	if xmlMode {
		v, err = sislxml.ToValue(string(input))
	} else {
		v, err = sisl.FromJSON(input)
	}
	if err != nil {
		return "", dataError(err)
	}

	if maxLength <= 0 {
		text, err := sisl.Encode(v)
		if err != nil {
			return "", dataError(err)
		}
		return text, nil
	}

	parts, split, err := sisl.Split(v, maxLength)
	if err != nil {
		return "", dataError(err)
	}
	if !split {
		text, err := sisl.Encode(v)
		if err != nil {
			return "", dataError(err)
		}
		return text, nil
	}

	logger.Debug().Int("parts", len(parts)).Msg("split output")
	arr := "[]"
	for _, part := range parts {
		arr, err = sjson.Set(arr, "-1", part)
		if err != nil {
			return "", err
		}
	}
	return arr, nil
}

func runLoads(logger zerolog.Logger, input []byte, xmlMode, prettyOut bool) (string, error) {
	v, err := sisl.LoadsAny(input)
	if err != nil {
		return "", dataError(err)
	}

	if xmlMode {
		text, err := sislxml.FromValue(v)
		if err != nil {
			return "", dataError(err)
		}
		return text, nil
	}

	out, err := sisl.ToJSON(v)
	if err != nil {
		return "", dataError(err)
	}
	if prettyOut {
		out = pretty.Pretty(out)
	}
	logger.Debug().Int("bytes", len(out)).Msg("converted to JSON")
	return string(out), nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger().Level(level)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, text string) error {
	if len(text) == 0 || text[len(text)-1] != '\n' {
		text += "\n"
	}
	if path == "" {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
