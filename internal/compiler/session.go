// Package compiler orchestrates a single MiniSoft compilation: source
// text through the lexer, parser, semantic analyzer, and quadruple
// emitter, halting at the first failing stage except the analyzer,
// which accumulates every error across the whole program before the
// session gives up.
package compiler

import (
	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/lexer"
	"github.com/minisoft-lang/minisoft/internal/parser"
	"github.com/minisoft-lang/minisoft/internal/quad"
	"github.com/minisoft-lang/minisoft/internal/semantic"
	"github.com/minisoft-lang/minisoft/internal/symboltable"
	"github.com/minisoft-lang/minisoft/internal/token"
)

// Stage names the pipeline phase a Session stopped at.
type Stage int

const (
	StageDone Stage = iota
	StageLex
	StageParse
	StageSemantic
	StageCodegen
)

// Session owns one compilation's inputs and the artifacts each stage
// produces, for the lifetime of the compile.
type Session struct {
	Source   string
	Filename string
	Reporter *diag.Reporter

	// Trace, when set, asks the lexer to log every token it produces.
	// Intended for the CLI's --verbose mode.
	Trace bool

	// MaxIdentifierLength overrides the lexer's identifier-length limit
	// when non-zero, per the Configuration component.
	MaxIdentifierLength int

	Tokens  []token.Token
	Program *ast.Program
	Table   *symboltable.Table
	Quads   []quad.Quadruple
}

// New creates a Session over source, reporting diagnostics with color
// enabled or not per the caller's configuration.
func New(source, filename string, color bool) *Session {
	return &Session{
		Source:   source,
		Filename: filename,
		Reporter: diag.NewReporter(color),
	}
}

// Run drives the full pipeline and returns the stage it stopped at:
// StageDone on success, or the first stage that reported an error.
func (s *Session) Run() Stage {
	lx := lexer.New(s.Source, s.Reporter)
	lx.SetTracing(s.Trace)
	if s.MaxIdentifierLength > 0 {
		lx.SetMaxIdentifierLength(s.MaxIdentifierLength)
	}
	s.Tokens = lx.Tokenize()
	if s.Reporter.HasErrors(diag.Lexical) {
		return StageLex
	}

	p := parser.New(s.Tokens, s.Reporter)
	program, ok := p.ParseProgram()
	if !ok {
		return StageParse
	}
	s.Program = program

	analyzer := semantic.New(s.Reporter)
	analyzed := analyzer.Analyze(program)
	s.Table = analyzer.Table()
	if !analyzed {
		return StageSemantic
	}

	emitter := quad.New(s.Table)
	s.Quads = emitter.Emit(program)
	return StageDone
}

// ExitCode maps the stage a Session stopped at to the process exit
// code for that failure. Usage errors (no source, bad flags) are the
// driver's own concern and are not represented here.
func (s Stage) ExitCode() int {
	switch s {
	case StageLex:
		return 2
	case StageParse:
		return 3
	case StageSemantic:
		return 4
	case StageCodegen:
		return 5
	default:
		return 0
	}
}
