package pycforge

// Strategy selects how a toolchain is driven to produce bytecode.
type Strategy int

const (
	// StrategyImport compiles by importing a staged copy of the input,
	// relying on the interpreter writing bytecode as an import side
	// effect. The oldest generations expose no other compiler entry
	// point reachable from the command line.
	StrategyImport Strategy = iota

	// StrategyPyCompile calls py_compile with explicit source and
	// destination paths. Available from every later generation.
	StrategyPyCompile
)

func (s Strategy) String() string {
	if s == StrategyImport {
		return "import"
	}
	return "py_compile"
}

// StrategyFor maps an era to its compile strategy. Pure; the selected
// strategy only determines which branch of the executor runs.
func StrategyFor(era Era) Strategy {
	switch era {
	case EraAncient, EraLegacy:
		return StrategyImport
	default:
		return StrategyPyCompile
	}
}

// stagingModule is the module name the import strategy stages the input
// under. The name is deliberately unlike any real module so the import
// cannot collide with the input's own name or the standard library.
const stagingModule = "pymc_temp"

// legacySuffixes are the compiled-artifact suffixes the import strategy
// probes for, in fixed order. Which one appears depends on the
// generation.
var legacySuffixes = []string{".pyc", ".pyo"}
