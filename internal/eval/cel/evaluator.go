package cel

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// Evaluator evaluates CEL gate expressions against a table's shape
type Evaluator struct {
	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// Shape describes the table a gate expression is evaluated against
type Shape struct {
	Columns []string
	Rows    int
}

// NewEvaluator creates a new CEL evaluator
func NewEvaluator() *Evaluator {
	env, err := cel.NewEnv(
		cel.Variable("columns", cel.ListType(cel.StringType)),
		cel.Variable("rows", cel.IntType),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL environment: %v", err))
	}

	return &Evaluator{
		env:   env,
		cache: make(map[string]cel.Program),
	}
}

// Evaluate evaluates a CEL expression against the given shape
func (e *Evaluator) Evaluate(ctx context.Context, expression string, shape Shape) (interface{}, error) {
	program, err := e.getProgram(expression)
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression: %w", err)
	}

	columns := shape.Columns
	if columns == nil {
		columns = []string{}
	}

	out, _, err := program.ContextEval(ctx, map[string]interface{}{
		"columns": columns,
		"rows":    int64(shape.Rows),
	})
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	return out.Value(), nil
}

// Matches evaluates a boolean gate. An empty expression always matches.
func (e *Evaluator) Matches(ctx context.Context, expression string, shape Shape) (bool, error) {
	if expression == "" {
		return true, nil
	}

	result, err := e.Evaluate(ctx, expression, shape)
	if err != nil {
		return false, err
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("expression %q returned %T, want bool", expression, result)
	}
	return matched, nil
}

// getProgram gets a compiled program from cache or compiles it
func (e *Evaluator) getProgram(expression string) (cel.Program, error) {
	e.mu.RLock()
	if program, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if program, ok := e.cache[expression]; ok {
		return program, nil
	}

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("parse error: %w", issues.Err())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program generation error: %w", err)
	}

	e.cache[expression] = program

	return program, nil
}

// ValidateExpression checks that an expression compiles to a boolean
func (e *Evaluator) ValidateExpression(expression string) error {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return issues.Err()
	}

	if ast.OutputType().String() != cel.BoolType.String() {
		return fmt.Errorf("expression %q must return bool, got %s", expression, ast.OutputType())
	}

	return nil
}
