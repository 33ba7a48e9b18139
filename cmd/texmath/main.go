// Command texmath converts TeX expressions given as arguments, or one per line on stdin, into MathML.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eolymp/go-texmath"
	"github.com/eolymp/go-texmath/internal/logger"
	"github.com/fatih/color"
)

// macroFlags collects repeated -macro name=body flags
type macroFlags texmath.Macros

func (m macroFlags) String() string {
	return fmt.Sprintf("%d macros", len(m))
}

func (m macroFlags) Set(value string) error {
	name, body, ok := strings.Cut(value, "=")
	if !ok || !strings.HasPrefix(name, "\\") {
		return errors.New("macro must be written as \\name=body")
	}

	m[name] = texmath.MacroText(body)
	return nil
}

func main() {
	macros := macroFlags{}

	display := flag.Bool("display", false, "render in display mode")
	annotate := flag.Bool("annotate", false, "embed the source as an annotation")
	leqno := flag.Bool("leqno", false, "put equation tags on the left")
	trust := flag.Bool("trust", false, "allow \\href, \\url, \\class, \\id, \\style and \\data")
	strict := flag.String("strict", "ignore", "handling of LaTeX-incompatible input: ignore, warn or error")
	wrap := flag.String("wrap", "tex", "soft line breaks: tex, = or none")
	xml := flag.Bool("xml", false, "add the MathML namespace")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Var(macros, "macro", "define a macro as \\name=body, may be repeated")
	flag.Parse()

	strictMode, err := texmath.ParseStrictMode(*strict)
	if err != nil {
		color.Red("%v", err)
		os.Exit(2)
	}

	wrapMode, err := texmath.ParseWrapMode(*wrap)
	if err != nil {
		color.Red("%v", err)
		os.Exit(2)
	}

	opts := texmath.Options{
		DisplayMode:  *display,
		Annotate:     *annotate,
		Leqno:        *leqno,
		ThrowOnError: true,
		Macros:       texmath.Macros(macros),
		Strict:       strictMode,
		Wrap:         wrapMode,
		XML:          *xml,
		Logger:       logger.Console(*verbose),
	}

	if *trust {
		opts.Trust = texmath.TrustAll
	}

	failed := 0
	convert := func(source string) {
		markup, err := texmath.ConvertToString(source, opts)
		if err != nil {
			failed++
			color.Red("%v", err)
			return
		}

		fmt.Println(markup)
	}

	if flag.NArg() > 0 {
		for _, source := range flag.Args() {
			convert(source)
		}
	} else if err := eachLine(os.Stdin, convert); err != nil {
		color.Red("unable to read input: %v", err)
		os.Exit(2)
	}

	if failed > 0 {
		color.Yellow("%d expression(s) failed", failed)
		os.Exit(1)
	}
}

func eachLine(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			fn(line)
		}
	}

	return scanner.Err()
}
