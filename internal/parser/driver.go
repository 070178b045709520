package parser

import (
	"bufio"
	"io"

	"github.com/photon-lang/photon/internal/assembler"
	"github.com/photon-lang/photon/internal/token"
)

// LineSource supplies one assembled logical line at a time, hiding
// whether it comes from a file buffer or an interactive reader. Next
// returns io.EOF once exhausted.
type LineSource interface {
	Next() (string, error)
}

// fileSource reads logical lines out of a bufio.Scanner via the
// assembler, joining bracket/comma continuations exactly as
// Interpreter.file did in the original line-oriented driver.
type fileSource struct {
	scanner *bufio.Scanner
	asm     *assembler.Assembler
	lineNo  int
}

// NewFileSource returns a LineSource that reads complete logical lines
// from r (spec.md §4.B file mode).
func NewFileSource(r io.Reader) LineSource {
	return &fileSource{scanner: bufio.NewScanner(r), asm: assembler.New()}
}

func (f *fileSource) Next() (string, error) {
	for {
		if !f.scanner.Scan() {
			if err := f.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		f.lineNo++
		line, done := f.asm.Feed(f.scanner.Text())
		if done {
			if line == "" {
				continue
			}
			return line, nil
		}
	}
}

// PromptFunc prints a prompt and reads one raw physical line, used by
// the REPL LineSource. It returns io.EOF when the user ends input.
type PromptFunc func(prompt assembler.Prompt) (string, error)

// replSource drives the REPL's own assembler across interactive reads,
// mirroring Interpreter.console/getBlock's alternating '>>> '/'... '
// prompting (spec.md §4.B, §6).
type replSource struct {
	read   PromptFunc
	asm    *assembler.Assembler
	lineNo int
}

// NewREPLSource returns a LineSource driven by an interactive read
// function.
func NewREPLSource(read PromptFunc) LineSource {
	return &replSource{read: read, asm: assembler.New()}
}

func (r *replSource) Next() (string, error) {
	for {
		raw, err := r.read(r.asm.Prompt())
		if err != nil {
			return "", err
		}
		r.lineNo++
		line, done := r.asm.Feed(raw)
		if done {
			if line == "" {
				continue
			}
			return line, nil
		}
	}
}

// Driver sequences LineSource reads through the lexer/Parser, reattaching
// indented blocks and elif/else modifier chains the way the original
// Interpreter.handleBlock/getBlock pair did: a block-opening statement
// (its last token is KindBeginBlock) consumes every following line whose
// indent exceeds its own as its Block, then -- for If specifically --
// keeps absorbing elif/else siblings at the same indent as chained
// Modifiers. A one-line lookahead buffer (that line's tokens) lets the
// recursive descent push back the first line that turns out not to belong to the block
// currently being read.
type Driver struct {
	src      LineSource
	parser   *Parser
	filename string

	lookahead []token.Token
	haveLook  bool
	atEOF     bool
}

// NewDriver returns a Driver reading logical lines from src.
func NewDriver(src LineSource, p *Parser, filename string) *Driver {
	return &Driver{src: src, parser: p, filename: filename}
}

// Next returns the next fully assembled statement Node (block and
// modifier chain included), or io.EOF when src is exhausted.
func (d *Driver) Next() (*Node, error) {
	toks, ok, err := d.nextTokens()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.EOF
	}
	return d.handleTokenized(toks)
}

// nextTokens returns the next line's tokens, ok=false at end of input.
func (d *Driver) nextTokens() ([]token.Token, bool, error) {
	if d.haveLook {
		d.haveLook = false
		return d.lookahead, true, nil
	}
	if d.atEOF {
		return nil, false, nil
	}
	line, err := d.src.Next()
	if err == io.EOF {
		d.atEOF = true
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return Lex(line, d.filename, 0), true, nil
}

func (d *Driver) pushBack(toks []token.Token) {
	d.lookahead = toks
	d.haveLook = true
}

// handleTokenized reduces toks to a Node and, if it opens a block,
// absorbs the indented body (and for If, chained elif/else) before
// returning.
func (d *Driver) handleTokenized(toks []token.Token) (*Node, error) {
	node, err := d.parser.ParseLine(toks)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return d.Next()
	}
	if !HasBeginBlock(toks) {
		return node, nil
	}
	indent := toks[0].Indent
	block, nextToks, err := d.getBlock(indent)
	if err != nil {
		return nil, err
	}
	node.Block = block

	if node.Reduces == "If" {
		for nextToks != nil && len(nextToks) > 0 && nextToks[0].Indent == indent {
			modNode, err := d.parser.ParseLine(nextToks)
			if err != nil {
				return nil, err
			}
			if modNode == nil || (modNode.Reduces != "Elif" && modNode.Reduces != "Else") {
				break
			}
			var modBlock []*Node
			modBlock, nextToks, err = d.getBlock(indent)
			if err != nil {
				return nil, err
			}
			modNode.Block = modBlock
			node.Modifier = chainModifier(node.Modifier, modNode)
		}
	}
	if nextToks != nil {
		d.pushBack(nextToks)
	}
	return node, nil
}

// getBlock reads statements while their indent exceeds parentIndent,
// returning the collected Block plus the raw tokens of the first
// statement that does not belong to the block (nil at end of input),
// ported from Interpreter.getBlock.
func (d *Driver) getBlock(parentIndent int) ([]*Node, []token.Token, error) {
	var block []*Node
	for {
		toks, ok, err := d.nextTokens()
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return block, nil, nil
		}
		if len(toks) == 0 || toks[0].Indent <= parentIndent {
			return block, toks, nil
		}
		stmt, err := d.handleTokenized(toks)
		if err != nil {
			return nil, nil, err
		}
		if stmt != nil {
			block = append(block, stmt)
		}
	}
}

func chainModifier(existing, next *Node) *Node {
	if existing == nil {
		return next
	}
	cur := existing
	for cur.Modifier != nil {
		cur = cur.Modifier
	}
	cur.Modifier = next
	return existing
}
