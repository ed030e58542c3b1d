package main

import (
	"fmt"
	"io/ioutil"

	"github.com/alecthomas/morpheme/lexer/ebnf"
)

type matchCmd struct {
	Grammar    string   `required:"" type:"existingfile" help:"EBNF lexical grammar."`
	Production string   `arg:"" required:"" help:"Production to match with."`
	Inputs     []string `arg:"" required:"" help:"Strings to match against."`
}

func (c *matchCmd) Run() error {
	grammar, err := ioutil.ReadFile(c.Grammar)
	if err != nil {
		return err
	}
	rules, err := ebnf.Rules(string(grammar))
	if err != nil {
		return err
	}
	for _, rule := range rules {
		if rule.Name == c.Production {
			for _, input := range c.Inputs {
				if n, ok := rule.Pattern.MatchPrefix(input); ok {
					fmt.Printf("%s: matched %q\n", input, input[:n])
				} else {
					fmt.Printf("%s: no match\n", input)
				}
			}
			return nil
		}
	}
	return fmt.Errorf("no production %q in %s", c.Production, c.Grammar)
}
