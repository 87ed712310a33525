// Command csvprobe inspects a raw source file and prints the run-config
// source stanza for it: detected delimiter, guessed canonical table, and
// header_map placeholders for columns the field mapping does not cover.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"salesmart/internal/probe"
)

func main() {
	name := flag.String("name", "", "source name (default: file basename)")
	flag.Parse()

	path := flag.Arg(0)
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: csvprobe [-name NAME] FILE")
		os.Exit(2)
	}

	f, err := os.Open(path)
	if err != nil {
		fatalf("%v", err)
	}
	defer f.Close()

	res, err := probe.Probe(f)
	if err != nil {
		fatalf("%v", err)
	}

	srcName := *name
	if srcName == "" {
		base := filepath.Base(path)
		srcName = strings.TrimSuffix(base, filepath.Ext(base))
	}

	fmt.Fprintf(os.Stderr, "delimiter: %q\n", res.Delimiter)
	fmt.Fprintf(os.Stderr, "table:     %s (%d columns matched)\n", res.Table, res.Matched)
	for _, h := range res.Headers {
		fmt.Fprintf(os.Stderr, "  %-30s -> %s\n", h.Raw, h.Canonical)
	}

	out, err := json.MarshalIndent(probe.Source(srcName, path, res), "", "  ")
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(string(out))
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
