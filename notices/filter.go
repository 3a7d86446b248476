package notices

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultExpression hides read notices and the informational and update types.
const DefaultExpression = `!IsNew || Type in ["I", "U"]`

// Filter hides notices matching a compiled expression.
type Filter struct {
	program *vm.Program
	expr    string
}

// Compile compiles a hide expression. The expression sees the notice fields
// IsNew, Type, Title, Text, Who, URL and Timestamp.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(expression,
		expr.Env(env(Notice{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Err: err}
	}

	return &Filter{
		program: program,
		expr:    expression,
	}, nil
}

// Default returns the filter for DefaultExpression.
func Default() *Filter {
	f, err := Compile(DefaultExpression)
	if err != nil {
		panic(err)
	}
	return f
}

func env(n Notice) map[string]any {
	return map[string]any{
		"IsNew":     n.IsNew(),
		"Type":      n.Type,
		"Title":     n.Title,
		"Text":      n.Text,
		"Who":       n.Who,
		"URL":       n.URL,
		"Timestamp": n.Timestamp,
	}
}

// Hide reports whether the notice should be dropped. A notice the expression
// fails on is kept.
func (f *Filter) Hide(n Notice) bool {
	result, err := expr.Run(f.program, env(n))
	if err != nil {
		return false
	}
	hide, ok := result.(bool)
	return ok && hide
}

// Apply returns a pruned copy of nation. Hidden notices are removed, the
// unread marker is stripped from the rest and groups left empty are dropped.
func (f *Filter) Apply(nation Nation) Nation {
	out := Nation{
		XMLName: nation.XMLName,
		ID:      nation.ID,
	}

	for _, group := range nation.Groups {
		var kept []Notice
		for _, n := range group.Notices {
			if f.Hide(n) {
				continue
			}
			n.New = nil
			kept = append(kept, n)
		}
		if len(kept) == 0 {
			continue
		}
		out.Groups = append(out.Groups, Group{Notices: kept})
	}

	return out
}

// String returns the original expression
func (f *Filter) String() string {
	return f.expr
}
