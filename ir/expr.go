package ir

import "github.com/wippyai/wasmkit/wasm"

// Expr is a node of the tree IR. The set of implementations is closed.
type Expr interface {
	// Type returns the values the node leaves for its parent.
	Type() ResultType
	expr()
}

// Nop is a run of Count consecutive nop instructions.
type Nop struct {
	Count int
}

// Unreachable traps.
type Unreachable struct{}

// Drop evaluates Value and discards it.
type Drop struct {
	Value Expr
}

// Block is a block, a loop, an if arm or a function body. Synthetic blocks
// group a value with the statements the stack machine executed after it;
// they have no label in the binary form.
type Block struct {
	Children []Expr
	Result   ResultType
	// BlockType is the binary block-type immediate.
	BlockType int32
	IsLoop    bool
	Synthetic bool
}

// If selects Then or Else by Condition. Else is nil without an else arm.
type If struct {
	Condition Expr
	Then      *Block
	Else      *Block
	Result    ResultType
	BlockType int32
}

// Br branches to Label carrying Values. A non-nil Condition makes it br_if,
// which yields the carried values when the branch is not taken.
type Br struct {
	Label     *Block
	Condition Expr
	Values    []Expr
	Result    ResultType
}

// Switch is br_table.
type Switch struct {
	Default   *Block
	Condition Expr
	Labels    []*Block
	Values    []Expr
}

// Call calls Func directly or Target through table TableIdx.
type Call struct {
	Func     *Function
	Target   Expr
	Sig      *wasm.FuncType
	Args     []Expr
	Result   ResultType
	TypeIdx  uint32
	TableIdx uint32
	Indirect bool
}

// Get reads a local or global.
type Get struct {
	Var *Variable
}

// Set writes a local or global.
type Set struct {
	Var   *Variable
	Value Expr
}

// Load reads Width bytes at Address.
type Load struct {
	Address Expr
	Mem     wasm.MemoryImm
	Op      wasm.Opcode
	ValType wasm.ValueType
	Width   uint8
	Signed  bool
}

// Store writes the low Width bytes of Value at Address.
type Store struct {
	Address Expr
	Value   Expr
	Mem     wasm.MemoryImm
	Op      wasm.Opcode
	ValType wasm.ValueType
	Width   uint8
}

// Const is a constant. Integer constants keep their two's complement
// value in I64 for both widths.
type Const struct {
	Func    *Function
	I64     int64
	F64     float64
	F32     float32
	V128    [16]byte
	ValType wasm.ValueType
	Null    bool
}

// Unary applies a one-operand numeric or reference operator.
type Unary struct {
	Operand Expr
	Op      wasm.Opcode
	Result  wasm.ValueType
}

// Convert applies a conversion between value types.
type Convert struct {
	Operand Expr
	Op      wasm.Opcode
	Result  wasm.ValueType
}

// Binary applies a two-operand operator.
type Binary struct {
	Left   Expr
	Right  Expr
	Op     wasm.Opcode
	Result wasm.ValueType
}

// Select yields IfTrue when Condition is non-zero and IfFalse otherwise.
// Typed is the result list of the typed form, nil for plain select.
type Select struct {
	Condition Expr
	IfTrue    Expr
	IfFalse   Expr
	Typed     []wasm.ValueType
}

// Return leaves the function with Values.
type Return struct {
	Values []Expr
}

// MemorySize yields the page count of memory MemIdx.
type MemorySize struct {
	MemIdx uint32
}

// MemoryGrow grows memory MemIdx by Delta pages.
type MemoryGrow struct {
	Delta  Expr
	MemIdx uint32
}

// MultiSet stores the results of Value into Targets, in result order.
type MultiSet struct {
	Value   Expr
	Targets []*Variable
}

func (*Nop) Type() ResultType         { return Void }
func (*Unreachable) Type() ResultType { return Void }
func (*Drop) Type() ResultType        { return Void }
func (b *Block) Type() ResultType     { return b.Result }
func (n *If) Type() ResultType        { return n.Result }
func (n *Br) Type() ResultType        { return n.Result }
func (*Switch) Type() ResultType      { return Void }
func (n *Call) Type() ResultType      { return n.Result }
func (n *Get) Type() ResultType       { return Single(n.Var.Type) }
func (*Set) Type() ResultType         { return Void }
func (n *Load) Type() ResultType      { return Single(n.ValType) }
func (*Store) Type() ResultType       { return Void }
func (n *Const) Type() ResultType     { return Single(n.ValType) }
func (n *Unary) Type() ResultType     { return Single(n.Result) }
func (n *Convert) Type() ResultType   { return Single(n.Result) }
func (n *Binary) Type() ResultType    { return Single(n.Result) }
func (*Return) Type() ResultType      { return Void }
func (*MemorySize) Type() ResultType  { return Single(wasm.ValI32) }
func (*MemoryGrow) Type() ResultType  { return Single(wasm.ValI32) }
func (*MultiSet) Type() ResultType    { return Void }

func (n *Select) Type() ResultType {
	if len(n.Typed) > 0 {
		return ResultOf(n.Typed)
	}
	return n.IfTrue.Type()
}

func (*Nop) expr()         {}
func (*Unreachable) expr() {}
func (*Drop) expr()        {}
func (*Block) expr()       {}
func (*If) expr()          {}
func (*Br) expr()          {}
func (*Switch) expr()      {}
func (*Call) expr()        {}
func (*Get) expr()         {}
func (*Set) expr()         {}
func (*Load) expr()        {}
func (*Store) expr()       {}
func (*Const) expr()       {}
func (*Unary) expr()       {}
func (*Convert) expr()     {}
func (*Binary) expr()      {}
func (*Select) expr()      {}
func (*Return) expr()      {}
func (*MemorySize) expr()  {}
func (*MemoryGrow) expr()  {}
func (*MultiSet) expr()    {}
