// Package query holds the validated list-query intents (search, filters,
// sort) and the per-entity metadata that declares which columns may be
// touched by them.
package query

// Op is a comparison operator accepted in bracket filters (field[gte]=2).
type Op string

// Operator constants. The set is closed: anything else is dropped before it
// can reach SQL assembly.
const (
	OpEq  Op = "eq"
	OpNe  Op = "ne"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
)

var opSymbols = map[Op]string{
	OpEq:  "=",
	OpNe:  "<>",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// ParseOp maps an operator suffix to an Op. Unknown suffixes report false.
func ParseOp(s string) (Op, bool) {
	op := Op(s)
	_, ok := opSymbols[op]
	return op, ok
}

// IsValid checks if the op is one of the supported operators.
func (o Op) IsValid() bool {
	_, ok := opSymbols[o]
	return ok
}

// Symbol returns the SQL comparison symbol for the operator.
// Unknown operators yield "" and must not be emitted.
func (o Op) Symbol() string { return opSymbols[o] }
