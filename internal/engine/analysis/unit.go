package analysis

import "fmt"

// Kind distinguishes function-level from file-level analysis units.
type Kind int

const (
	KindFunction Kind = iota
	KindFile
)

func (k Kind) String() string {
	if k == KindFile {
		return "file"
	}
	return "function"
}

// Location identifies a unit inside the analyzed codebase.
type Location struct {
	File     string
	Function string // qualified name; empty for file units
	Line     int
}

// Key returns the dedup identity for a unit. No two ranked items may share it.
func (l Location) Key() string {
	return fmt.Sprintf("%s:%d:%s", l.File, l.Line, l.Function)
}

func (l Location) String() string {
	if l.Function == "" {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return fmt.Sprintf("%s:%d %s", l.File, l.Line, l.Function)
}

// RawMetrics are the upstream-computed complexity numbers. They are never
// overwritten by dampened values; effective metrics are always derived.
type RawMetrics struct {
	Cyclomatic int
	Cognitive  int
	Nesting    int
	Length     int
}

// Entropy holds the token entropy for a unit. A nil *Entropy on a Unit means
// the value was never computed, which disables dampening entirely.
type Entropy struct {
	TokenEntropy float64 // [0,1]
}

// CallGraph carries the query results consumed from the call-graph
// collaborator. Reachability already accounts for magic methods, framework
// hooks and dynamic bindings; nothing downstream re-infers it.
type CallGraph struct {
	Upstream     int // callers
	Downstream   int // callees
	IsEntryPoint bool
	IsRecursive  bool
	IsReachable  bool
}

// Comparison is a single comparison expression on identifier paths,
// extracted upstream for the coordinator heuristic.
type Comparison struct {
	Left  string
	Right string
	Line  int
}

// AccumulatorPush records an append/push call onto a named receiver and
// whether it is lexically scoped inside one of the unit's comparisons.
type AccumulatorPush struct {
	Receiver     string
	Value        string // literal or constructor text, e.g. "Action::Restart"
	InComparison bool
	Line         int
}

// StructInfo summarizes one struct declared in a file unit.
type StructInfo struct {
	Name       string
	IsUnit     bool // no fields
	FieldCount int
}

// MethodInfo summarizes one method declared in a file unit. Trait is the
// implemented trait name, empty for self-chosen methods.
type MethodInfo struct {
	Name        string
	OwnerStruct string
	Trait       string
}

// ImplBlock is one trait impl block in a file unit.
type ImplBlock struct {
	Trait     string
	Type      string
	StartLine int
	EndLine   int
}

// Lines returns the inclusive line span of the impl block.
func (b ImplBlock) Lines() int {
	if b.EndLine < b.StartLine {
		return 0
	}
	return b.EndLine - b.StartLine + 1
}

// FileInventory is the struct/impl/method census for a file unit.
type FileInventory struct {
	Lines               int
	FunctionCount       int
	Structs             []StructInfo
	Methods             []MethodInfo
	Impls               []ImplBlock
	HasTraitObjectArray bool // static array of trait objects, registry idiom
}

// Unit is a function or file under analysis. Immutable once created; it
// exists only for the duration of one run.
type Unit struct {
	Kind Kind
	Location

	Raw      RawMetrics
	Entropy  *Entropy
	Coverage *float64 // transitive coverage in [0,1]; nil = unknown
	Graph    CallGraph

	IsTest      bool
	IsGenerated bool
	Visibility  string
	TraitName   string // enclosing trait impl for methods, empty otherwise
	Params      []string
	IOOps       []string

	// Structural facts consumed by detectors.
	Comparisons        []Comparison
	Pushes             []AccumulatorPush
	ReturnsAccumulator bool
	ActionLiterals     int

	Inventory *FileInventory // file units only
}

// CoveragePct returns the coverage percentage and whether it is known.
func (u *Unit) CoveragePct() (float64, bool) {
	if u.Coverage == nil {
		return 0, false
	}
	return *u.Coverage, true
}
