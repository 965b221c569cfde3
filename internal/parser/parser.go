package parser

import (
	"strum/internal/ast"
	"strum/internal/diag"
	"strum/internal/lexer"
	"strum/internal/source"
	"strum/internal/token"
)

// Options configures a parse run.
type Options struct {
	Reporter diag.Reporter
}

// Result carries the parsed file and the bag the reporter collected into,
// when the reporter was a BagReporter.
type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Parser holds per-file parse state. The grammar needs one token of
// lookahead, provided by the lexer's Peek.
type Parser struct {
	lx       *lexer.Lexer
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics at EOF
	failed   bool
}

// ParseFile parses one pattern source file:
//
//	program := import_stmt* block*
//
// The parser fails fast: the first syntax error is reported and parsing
// stops. An empty program is valid and yields a file with no blocks.
func ParseFile(fs *source.FileSet, lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	file := &ast.File{Span: lx.EmptySpan()}
	startSpan := p.lx.Peek().Span

	p.parseImports(file)
	p.parseBlocks(file)

	if !p.failed && !p.at(token.EOF) {
		tok := p.lx.Peek()
		p.err(diag.SynUnexpectedTopLevel,
			"expected 'import' or a block keyword (melody, rhythm, harmony, contrast), got '"+tok.Text+"'")
	}

	file.Span = startSpan.Cover(p.lastSpan)

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: file, Bag: bag}
}

func (p *Parser) parseImports(file *ast.File) {
	for !p.failed && p.at(token.KwImport) {
		imp, ok := p.parseImport()
		if !ok {
			return
		}
		file.Imports = append(file.Imports, imp)
	}
}

func (p *Parser) parseBlocks(file *ast.File) {
	for !p.failed {
		switch {
		case p.lx.Peek().IsBlockKeyword():
			block, ok := p.parseBlock()
			if !ok {
				return
			}
			file.Blocks = append(file.Blocks, block)
		case p.at(token.KwImport):
			p.err(diag.SynImportAfterBlock, "imports must precede all blocks")
			return
		default:
			return
		}
	}
}

// parseImport recognizes: "import" IDENT "from" STRING ";"
func (p *Parser) parseImport() (ast.Import, bool) {
	importTok := p.advance() // KwImport

	instr, ok := p.expect(token.Ident, diag.SynExpectIdentifier,
		"expected instrument name after 'import'")
	if !ok {
		return ast.Import{}, false
	}
	if _, ok = p.expect(token.KwFrom, diag.SynExpectFrom,
		"expected 'from' after instrument name"); !ok {
		return ast.Import{}, false
	}
	module, ok := p.expect(token.StringLit, diag.SynExpectModuleName,
		"expected quoted module name after 'from'")
	if !ok {
		return ast.Import{}, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon,
		"expected ';' after import")
	if !ok {
		return ast.Import{}, false
	}

	return ast.Import{
		Instrument: instr.Text,
		Module:     unquote(module.Text),
		Span:       importTok.Span.Cover(semi.Span),
	}, true
}

// parseBlock recognizes: BLOCK_KEYWORD "{" statement* "}"
func (p *Parser) parseBlock() (ast.Block, bool) {
	kwTok := p.advance()
	blockType, _ := ast.BlockTypeForKeyword(kwTok.Kind)

	if _, ok := p.expect(token.LBrace, diag.SynExpectLBrace,
		"expected '{' after '"+kwTok.Text+"'"); !ok {
		return ast.Block{}, false
	}

	block := ast.Block{Type: blockType, KwSpan: kwTok.Span}
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.err(diag.SynExpectRBrace, "expected '}' to close '"+kwTok.Text+"' block")
			return ast.Block{}, false
		}
		stmt, ok := p.parseStatement()
		if !ok {
			return ast.Block{}, false
		}
		block.Statements = append(block.Statements, stmt)
	}
	rbrace := p.advance() // RBrace

	block.Span = kwTok.Span.Cover(rbrace.Span)
	return block, true
}

// parseStatement recognizes: IDENT NOTE_OR_NAME NUMBER ";"
func (p *Parser) parseStatement() (ast.Statement, bool) {
	instr, ok := p.expect(token.Ident, diag.SynExpectIdentifier,
		"expected instrument name, got '"+p.lx.Peek().Text+"'")
	if !ok {
		return ast.Statement{}, false
	}

	// The note slot accepts a pitched note (C4, F#3) or a bare identifier
	// used as a percussion label (Kick, Snare).
	noteTok := p.lx.Peek()
	if noteTok.Kind != token.Note && noteTok.Kind != token.Ident {
		p.err(diag.SynExpectNote, "expected note or percussion name, got '"+noteTok.Text+"'")
		return ast.Statement{}, false
	}
	p.advance()

	timeTok := p.lx.Peek()
	if !timeTok.IsNumber() {
		p.err(diag.SynExpectTimestamp, "expected numeric timestamp, got '"+timeTok.Text+"'")
		return ast.Statement{}, false
	}
	p.advance()

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon,
		"expected ';' after statement")
	if !ok {
		return ast.Statement{}, false
	}

	return ast.Statement{
		Instrument: instr.Text,
		Note:       noteTok.Text,
		Time:       timeTok.Text,
		Span:       instr.Span.Cover(semi.Span),
		TimeSpan:   timeTok.Span,
	}, true
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
