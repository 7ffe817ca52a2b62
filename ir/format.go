package ir

import (
	"fmt"
	"io"
	"strings"

	"github.com/wippyai/wasmkit/wasm"
)

// Fprint writes e to w as an indented s-expression. Blocks are labelled
// $L0, $L1, ... in the order they open; locals and globals print by index.
func Fprint(w io.Writer, e Expr) error {
	p := &printer{labels: make(map[*Block]string)}
	p.expr(e, 0)
	p.b.WriteByte('\n')
	_, err := io.WriteString(w, p.b.String())
	return err
}

// Sprint returns the Fprint form of e.
func Sprint(e Expr) string {
	var b strings.Builder
	_ = Fprint(&b, e)
	return b.String()
}

type printer struct {
	labels map[*Block]string
	b      strings.Builder
}

func (p *printer) label(b *Block) string {
	if name, ok := p.labels[b]; ok {
		return name
	}
	name := fmt.Sprintf("$L%d", len(p.labels))
	p.labels[b] = name
	return name
}

func (p *printer) target(b *Block) string {
	if name, ok := p.labels[b]; ok {
		return name
	}
	return "$?"
}

func (p *printer) leaf(s string) {
	p.b.WriteByte('(')
	p.b.WriteString(s)
	p.b.WriteByte(')')
}

func (p *printer) open(s string) {
	p.b.WriteByte('(')
	p.b.WriteString(s)
}

func (p *printer) children(depth int, es ...Expr) {
	for _, e := range es {
		p.b.WriteByte('\n')
		p.b.WriteString(strings.Repeat("  ", depth))
		p.expr(e, depth)
	}
}

func (p *printer) close() { p.b.WriteByte(')') }

func resultSuffix(r ResultType) string {
	if r.IsVoid() {
		return ""
	}
	return " (result " + strings.Trim(r.String(), "()") + ")"
}

func (p *printer) block(b *Block, head string, depth int) {
	if b.Synthetic {
		p.open("seq" + resultSuffix(b.Result))
	} else {
		p.open(head + " " + p.label(b) + resultSuffix(b.Result))
	}
	p.children(depth+1, b.Children...)
	p.close()
}

func (p *printer) expr(e Expr, depth int) {
	switch n := e.(type) {
	case *Nop:
		if n.Count > 1 {
			p.leaf(fmt.Sprintf("nop x%d", n.Count))
		} else {
			p.leaf("nop")
		}
	case *Unreachable:
		p.leaf("unreachable")
	case *Drop:
		p.open("drop")
		p.children(depth+1, n.Value)
		p.close()
	case *Block:
		head := "block"
		if n.IsLoop {
			head = "loop"
		}
		p.block(n, head, depth)
	case *If:
		p.open("if" + resultSuffix(n.Result))
		p.children(depth+1, n.Condition)
		p.b.WriteByte('\n')
		p.b.WriteString(strings.Repeat("  ", depth+1))
		p.block(n.Then, "then", depth+1)
		if n.Else != nil {
			p.b.WriteByte('\n')
			p.b.WriteString(strings.Repeat("  ", depth+1))
			p.block(n.Else, "else", depth+1)
		}
		p.close()
	case *Br:
		head := "br "
		if n.Condition != nil {
			head = "br_if "
		}
		p.open(head + p.target(n.Label))
		p.children(depth+1, Children(n)...)
		p.close()
	case *Switch:
		names := make([]string, 0, len(n.Labels)+1)
		for _, l := range n.Labels {
			names = append(names, p.target(l))
		}
		names = append(names, p.target(n.Default))
		p.open("br_table " + strings.Join(names, " "))
		p.children(depth+1, Children(n)...)
		p.close()
	case *Call:
		if n.Indirect {
			p.open(fmt.Sprintf("call_indirect %d (type %d)", n.TableIdx, n.TypeIdx))
		} else {
			p.open(fmt.Sprintf("call %d", n.Func.Index))
		}
		p.children(depth+1, Children(n)...)
		p.close()
	case *Get:
		p.leaf(varOp(n.Var, "get"))
	case *Set:
		p.open(varOp(n.Var, "set"))
		p.children(depth+1, n.Value)
		p.close()
	case *Load:
		p.open(wasm.Instruction{Opcode: n.Op, Imm: n.Mem}.String())
		p.children(depth+1, n.Address)
		p.close()
	case *Store:
		p.open(wasm.Instruction{Opcode: n.Op, Imm: n.Mem}.String())
		p.children(depth+1, n.Address, n.Value)
		p.close()
	case *Const:
		p.leaf(constInstr(n).String())
	case *Unary:
		p.open(n.Op.String())
		p.children(depth+1, n.Operand)
		p.close()
	case *Convert:
		p.open(n.Op.String())
		p.children(depth+1, n.Operand)
		p.close()
	case *Binary:
		p.open(n.Op.String())
		p.children(depth+1, n.Left, n.Right)
		p.close()
	case *Select:
		p.open("select" + resultSuffix(ResultOf(n.Typed)))
		p.children(depth+1, n.IfTrue, n.IfFalse, n.Condition)
		p.close()
	case *Return:
		p.open("return")
		p.children(depth+1, n.Values...)
		p.close()
	case *MemorySize:
		p.leaf(wasm.Instruction{Opcode: wasm.OpMemorySize, Imm: wasm.MemoryIdxImm{MemIdx: n.MemIdx}}.String())
	case *MemoryGrow:
		p.open(wasm.Instruction{Opcode: wasm.OpMemoryGrow, Imm: wasm.MemoryIdxImm{MemIdx: n.MemIdx}}.String())
		p.children(depth+1, n.Delta)
		p.close()
	case *MultiSet:
		idx := make([]string, len(n.Targets))
		for i, v := range n.Targets {
			idx[i] = fmt.Sprint(v.Index)
		}
		p.open("multi.set " + strings.Join(idx, " "))
		p.children(depth+1, n.Value)
		p.close()
	default:
		p.leaf(fmt.Sprintf("unknown %T", e))
	}
}

func varOp(v *Variable, verb string) string {
	scope := "local"
	if v.IsGlobal {
		scope = "global"
	}
	return fmt.Sprintf("%s.%s %d", scope, verb, v.Index)
}
