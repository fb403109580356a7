package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"typedlint/internal/ast"
	"typedlint/internal/driver"
	"typedlint/internal/lexer"
	"typedlint/internal/parser"
	"typedlint/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Print the syntax tree of a file as JSON",
		Long: `Parse a file with the parser selected by the configuration and print
its ESTree-shaped syntax tree. With --tokens the token stream is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().Bool("tokens", false, "print tokens instead of the tree")
	cmd.Flags().Bool("comments", false, "include comments with --tokens")
	addConfigFlags(cmd)
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	tokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	comments, err := cmd.Flags().GetBool("comments")
	if err != nil {
		return fmt.Errorf("failed to get comments flag: %w", err)
	}
	cf, err := readConfigFlags(cmd)
	if err != nil {
		return err
	}

	name := args[0]
	var content []byte
	if name == "-" {
		name = "<stdin>"
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(name)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))

	out := cmd.OutOrStdout()
	if tokens {
		return printTokens(out, cmd.ErrOrStderr(), file, comments)
	}

	catalog, err := newCatalog()
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(cmd, catalog, cf)
	if err != nil {
		return err
	}
	linter, err := driver.New(cfg, catalog, driver.Options{})
	if err != nil {
		return err
	}
	prog, err := linter.Parser().Parse(file, linter.ParseOptions())
	if err != nil {
		var syn *parser.SyntaxError
		if errors.As(err, &syn) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:%s: Parsing error: %s\n", name, syn.Pos, syn.Msg)
			return errProblems
		}
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ast.ToMap(prog, file))
}

type lexProblems struct {
	file *source.File
	out  io.Writer
	n    int
}

func (p *lexProblems) Report(span source.Span, msg string) {
	pos := p.file.Position(span.Start)
	fmt.Fprintf(p.out, "%s: %s\n", pos, msg)
	p.n++
}

func printTokens(out, errOut io.Writer, file *source.File, comments bool) error {
	problems := &lexProblems{file: file, out: errOut}
	toks, trivia := lexer.Tokenize(file, lexer.Options{Reporter: problems, Hashbang: true})

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	row := func(span source.Span, kind, text string) {
		pos := file.Position(span.Start)
		fmt.Fprintf(tw, "%s\t%s\t%q\n", pos, kind, text)
	}
	j := 0
	for _, tok := range toks {
		for comments && j < len(trivia) && trivia[j].Span.Start < tok.Span.Start {
			row(trivia[j].Span, "Comment", trivia[j].Text)
			j++
		}
		row(tok.Span, tok.Kind.String(), tok.Text)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if problems.n > 0 {
		return errProblems
	}
	return nil
}
