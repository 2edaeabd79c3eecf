// parsefile parses a local LDI PDF and prints the result as JSON. It is a
// development tool; no cache or database is involved.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"encomendas/internal/extractor/pdftext"
	"encomendas/internal/parser"
)

func main() {
	quiet := flag.Bool("quiet", false, "suppress parse stage logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: parsefile [-quiet] <file.pdf>")
		os.Exit(1)
	}

	p := parser.New(pdftext.New(), nil)
	opts := parser.Options{EnableCache: false, EnableLogging: !*quiet}

	result, err := p.Parse(context.Background(), flag.Arg(0), opts)
	if err != nil {
		log.Fatalf("parse failed: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encoding result: %v", err)
	}
	fmt.Println(string(out))
}
