package main

import (
	"io/ioutil"
	"os"

	"github.com/alecthomas/repr"

	"github.com/alecthomas/morpheme/lexer/ebnf"
)

type lexCmd struct {
	Grammar  string   `required:"" type:"existingfile" help:"EBNF lexical grammar."`
	TabWidth int      `default:"8" help:"Width of a tab stop for column tracking."`
	Elide    []string `help:"Productions to tokenise but drop from the output."`
	Input    string   `arg:"" optional:"" default:"-" type:"existingfile" help:"Input file (stdin if omitted)."`
}

func (c *lexCmd) Help() string {
	return `
Compiles the exported productions of an EBNF grammar into a lexer, tokenises
the input with it and dumps the resulting lines of tokens.
`
}

func (c *lexCmd) Run() error {
	grammar, err := ioutil.ReadFile(c.Grammar)
	if err != nil {
		return err
	}
	def, err := ebnf.New(string(grammar), ebnf.Elide(c.Elide...))
	if err != nil {
		return err
	}
	input, err := readInput(c.Input)
	if err != nil {
		return err
	}
	lines, err := def.Tokenize(input, c.TabWidth)
	if err != nil {
		return err
	}
	for _, line := range lines {
		repr.Println(line)
	}
	return nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := ioutil.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := ioutil.ReadFile(path)
	return string(data), err
}
