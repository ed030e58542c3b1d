package main

import "github.com/alecthomas/kong"

var (
	version string = "dev"
	cli     struct {
		Version kong.VersionFlag
		Lex     lexCmd   `cmd:"" help:"Tokenise input with an EBNF-defined lexer."`
		Match   matchCmd `cmd:"" help:"Match a production's pattern against inputs."`
	}
)

func main() {
	kctx := kong.Parse(&cli,
		kong.Description(`A command-line tool for Morpheme.`),
		kong.Vars{"version": version},
	)
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
