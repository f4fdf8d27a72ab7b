package router

import (
	"context"
	"fmt"
	"log/slog"
)

// Screen is a type-safe identifier for screens.
// Applications should define their own Screen constants using iota.
type Screen int

// ScreenFunc runs a screen until the user leaves it.
// It takes an input and returns a result; both are screen-specific.
type ScreenFunc func(ctx context.Context, input any) (result any, err error)

// TransitionFunc is called after each screen completes to determine the next screen.
// It receives the screen that just completed, its result, and the navigation stack.
//
// Return (screen, input) to navigate to a new screen.
// Return stack.Pop() values to go back.
// Return (ScreenExit, nil) to exit the router.
type TransitionFunc func(from Screen, result any, stack *Stack) (next Screen, input any)

// Keyed is implemented by screen inputs that fill the {key} segment of a route.
type Keyed interface {
	RouteKey() string
}

// ScreenExit is a special Screen value that signals the router to exit.
const ScreenExit Screen = -1

type registration struct {
	pattern Pattern
	fn      ScreenFunc
}

// Router manages screen navigation with explicit data flow.
// Screens are registered with a route pattern and a function, and a single
// transition function handles all routing logic in one place.
type Router struct {
	screens    map[Screen]registration
	order      []Screen
	transition TransitionFunc
	stack      *Stack
	logger     *slog.Logger
	current    string
}

// New creates a new Router.
func New(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		screens: make(map[Screen]registration),
		stack:   NewStack(),
		logger:  logger.With(slog.String("component", "router")),
	}
}

// Register adds a screen under a route pattern such as "home" or
// "demonDetail/{key}". It panics on a malformed or duplicate pattern, since
// both are programming errors.
func (r *Router) Register(screen Screen, pattern string, fn ScreenFunc) *Router {
	p, err := ParsePattern(pattern)
	if err != nil {
		panic(err)
	}
	for s, reg := range r.screens {
		if s != screen && reg.pattern.String() == p.String() {
			panic(fmt.Sprintf("router: pattern %q already registered for screen %d", pattern, s))
		}
	}
	if _, ok := r.screens[screen]; !ok {
		r.order = append(r.order, screen)
	}
	r.screens[screen] = registration{pattern: p, fn: fn}
	return r
}

// OnTransition sets the transition function that determines navigation flow.
func (r *Router) OnTransition(fn TransitionFunc) *Router {
	r.transition = fn
	return r
}

// Path renders the route of screen for the given input.
func (r *Router) Path(screen Screen, input any) (string, error) {
	reg, ok := r.screens[screen]
	if !ok {
		return "", fmt.Errorf("router: screen %d not registered", screen)
	}
	key := ""
	if k, ok := input.(Keyed); ok {
		key = k.RouteKey()
	}
	return reg.pattern.Render(key)
}

// Resolve maps a route path back to its screen and key.
func (r *Router) Resolve(path string) (Screen, string, error) {
	for _, screen := range r.order {
		if key, ok := r.screens[screen].pattern.Match(path); ok {
			return screen, key, nil
		}
	}
	return ScreenExit, "", fmt.Errorf("router: no screen matches %q", path)
}

// Current returns the route of the screen that is running, or "" when idle.
func (r *Router) Current() string {
	return r.current
}

// Run starts the router at the given screen with the given input.
// It continues running until the transition function returns ScreenExit,
// a screen fails, or ctx is cancelled.
func (r *Router) Run(ctx context.Context, start Screen, input any) error {
	if r.transition == nil {
		return fmt.Errorf("router: no transition function set")
	}
	defer func() { r.current = "" }()

	current := start
	currentInput := input

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		reg, ok := r.screens[current]
		if !ok {
			return fmt.Errorf("router: screen %d not registered", current)
		}

		path, err := reg.pattern.Render(keyOf(currentInput))
		if err != nil {
			return fmt.Errorf("router: screen %d: %w", current, err)
		}
		r.current = path
		r.logger.Debug("navigate", "route", path, "depth", r.stack.Len())

		result, err := reg.fn(ctx, currentInput)
		if err != nil {
			return fmt.Errorf("router: %s: %w", path, err)
		}

		next, nextInput := r.transition(current, result, r.stack)
		if next == ScreenExit {
			return nil
		}

		current = next
		currentInput = nextInput
	}
}

// Stack returns the navigation stack for use in transition functions.
func (r *Router) Stack() *Stack {
	return r.stack
}

func keyOf(input any) string {
	if k, ok := input.(Keyed); ok {
		return k.RouteKey()
	}
	return ""
}
