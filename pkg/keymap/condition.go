package keymap

import (
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// GuardEvaluator compiles and evaluates binding when-conditions.
// Supports:
//   - Comparison operators: >, <, >=, <=, ==, !=
//   - Logical operators: && (AND), || (OR), ! (NOT)
//   - Boolean literals: true, false
//   - Parentheses for precedence control
//   - Variable references from the registry context map
//
// Sandboxed - no arbitrary code execution. Compiled programs are cached
// per expression, so guards cost one compile at registration time and a
// cheap VM run per keystroke afterwards.
type GuardEvaluator struct {
	mu           sync.RWMutex
	programCache map[string]*vm.Program
}

// NewGuardEvaluator creates a new guard evaluator with an empty cache.
func NewGuardEvaluator() *GuardEvaluator {
	return &GuardEvaluator{
		programCache: make(map[string]*vm.Program),
	}
}

// Compile validates and caches a guard expression. Called at binding
// registration so malformed guards fail before any key is pressed.
func (g *GuardEvaluator) Compile(expression string) error {
	_, err := g.getOrCompileProgram(expression)
	return err
}

// EvalBool evaluates a guard against the given context map and returns
// its boolean result. Returns error if the expression does not produce
// a boolean.
func (g *GuardEvaluator) EvalBool(expression string, env map[string]interface{}) (bool, error) {
	program, err := g.getOrCompileProgram(expression)
	if err != nil {
		return false, err
	}

	if env == nil {
		env = map[string]interface{}{}
	}

	result, err := vm.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidGuard, err)
	}

	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expression %q returned %T, want bool", ErrInvalidGuard, expression, result)
	}
	return b, nil
}

// validateExpression checks for unsafe operations
func (g *GuardEvaluator) validateExpression(expression string) error {
	// List of unsafe patterns to block
	unsafePatterns := []string{
		"os.",
		"exec.",
		"http.",
		"net.",
		"syscall.",
		"unsafe.",
		"ReadFile",
		"WriteFile",
		"Command",
	}

	lowerExpr := strings.ToLower(expression)
	for _, pattern := range unsafePatterns {
		if strings.Contains(lowerExpr, strings.ToLower(pattern)) {
			return ErrUnsafeGuard
		}
	}

	return nil
}

// getOrCompileProgram retrieves a cached program or compiles a new one
func (g *GuardEvaluator) getOrCompileProgram(expression string) (*vm.Program, error) {
	g.mu.RLock()
	program, ok := g.programCache[expression]
	g.mu.RUnlock()
	if ok {
		return program, nil
	}

	if err := g.validateExpression(expression); err != nil {
		return nil, err
	}

	// Guards see whatever variables the application published via
	// SetContext, so the environment cannot be typed at compile time.
	options := []expr.Option{
		expr.Env(map[string]interface{}{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}

	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGuard, err)
	}

	g.mu.Lock()
	g.programCache[expression] = program
	g.mu.Unlock()

	return program, nil
}
