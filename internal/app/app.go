// Package app wires the doomdex screens together: it builds a view per
// screen, adapts its state to the screen toolkit and routes between home,
// the two lists and their detail pages.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/doomdex/internal/i18n"
	"github.com/BrandonKowalski/doomdex/pkg/gateway"
	"github.com/BrandonKowalski/doomdex/pkg/ui"
	"github.com/BrandonKowalski/doomdex/pkg/ui/constants"
	"github.com/BrandonKowalski/doomdex/pkg/ui/router"
	"github.com/BrandonKowalski/doomdex/pkg/view"
)

// Options configures an App.
type Options struct {
	Gateway              gateway.Gateway
	Images               gateway.ImageFetcher // Thumbnails and detail images are skipped when nil
	Translator           *i18n.Translator
	KeySource            view.KeySource
	MaxConcurrentFetches int
	Logger               *slog.Logger
}

// App owns the router and the screen functions registered on it.
type App struct {
	gw         gateway.Gateway
	fetchImage ui.ImageFetchFunc
	tr         *i18n.Translator
	keySource  view.KeySource
	maxFetches int
	logger     *slog.Logger
	router     *router.Router

	runHome   func(message string, options []ui.SelectionOption, footer []ui.FooterHelpItem, settings ui.SelectionMessageSettings) (*ui.SelectionMessageResult, error)
	runList   func(options ui.ListOptions) (*ui.ListResult, error)
	runDetail func(options ui.DetailScreenOptions) (*ui.DetailScreenResult, error)
}

// New builds an App. Gateway and Translator are required.
func New(opts Options) (*App, error) {
	if opts.Gateway == nil {
		return nil, errors.New("app: gateway is required")
	}
	if opts.Translator == nil {
		return nil, errors.New("app: translator is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		gw:         opts.Gateway,
		tr:         opts.Translator,
		keySource:  opts.KeySource,
		maxFetches: opts.MaxConcurrentFetches,
		logger:     logger.With(slog.String("component", "app")),
		runHome:    ui.SelectionMessage,
		runList:    ui.List,
		runDetail:  ui.DetailScreen,
	}
	if opts.Images != nil {
		a.fetchImage = opts.Images.FetchImage
	}

	a.router = router.New(logger).
		Register(ScreenHome, RouteHome, a.home).
		Register(ScreenDemons, RouteDemons, a.demons).
		Register(ScreenDemonDetail, RouteDemonDetail, a.demonDetail).
		Register(ScreenWeapons, RouteWeapons, a.weapons).
		Register(ScreenWeaponDetail, RouteWeaponDetail, a.weaponDetail).
		OnTransition(a.transition)

	return a, nil
}

// Router exposes the underlying router, mostly for its current route.
func (a *App) Router() *router.Router {
	return a.router
}

// Run shows the screen at route (home when empty) and navigates until the
// user backs out of home, closes the window or ctx is cancelled. Only real
// failures are returned.
func (a *App) Run(ctx context.Context, route string) error {
	if route == "" {
		route = RouteHome
	}
	screen, key, err := a.router.Resolve(route)
	if err != nil {
		return fmt.Errorf("app: start route: %w", err)
	}

	var input any
	switch screen {
	case ScreenHome:
		input = HomeInput{}
	case ScreenDemons, ScreenWeapons:
		a.router.Stack().Push(ScreenHome, HomeInput{}, nil)
		input = ListInput{}
	default:
		a.router.Stack().Push(ScreenHome, HomeInput{}, nil)
		input = DetailInput{Key: key}
	}

	a.logger.Info("starting", "route", route)
	err = a.router.Run(ctx, screen, input)
	switch {
	case err == nil:
		return nil
	case ui.IsQuit(err):
		a.logger.Info("window closed")
		return nil
	case errors.Is(err, context.Canceled):
		a.logger.Info("interrupted")
		return nil
	}
	return err
}

// transition keeps all navigation in one place. Home is the root of the
// stack; lists push themselves before opening a detail so that back restores
// their position.
func (a *App) transition(from router.Screen, result any, stack *router.Stack) (router.Screen, any) {
	switch from {
	case ScreenHome:
		res := result.(HomeResult)
		if res.Target == router.ScreenExit {
			return router.ScreenExit, nil
		}
		stack.Clear()
		stack.Push(ScreenHome, HomeInput{Selected: res.Selected}, nil)
		return res.Target, ListInput{}

	case ScreenDemons, ScreenWeapons:
		res := result.(ListResult)
		switch res.Action {
		case ListActionOpen:
			resume := res.Resume
			stack.Push(from, ListInput{}, &resume)
			return detailScreenOf(from), DetailInput{Key: res.Key}
		case ListActionHome:
			return home(stack)
		}
		return back(stack)

	case ScreenDemonDetail, ScreenWeaponDetail:
		if result.(DetailResult).Action == DetailActionHome {
			return home(stack)
		}
		return back(stack)
	}

	a.logger.Error("no transition", "screen", from)
	return router.ScreenExit, nil
}

func back(stack *router.Stack) (router.Screen, any) {
	entry := stack.Pop()
	if entry == nil {
		return ScreenHome, HomeInput{}
	}
	if in, ok := entry.Input.(ListInput); ok {
		if resume, ok := entry.Resume.(*ListResume); ok {
			in.Resume = resume
		}
		return entry.Screen, in
	}
	return entry.Screen, entry.Input
}

func home(stack *router.Stack) (router.Screen, any) {
	if entry := stack.Unwind(ScreenHome); entry != nil {
		return ScreenHome, entry.Input
	}
	return ScreenHome, HomeInput{}
}

func (a *App) footer(ids ...string) []ui.FooterHelpItem {
	buttons := map[string]string{
		"HelpBack":   constants.VirtualButtonB.GetName(),
		"HelpQuit":   constants.VirtualButtonB.GetName(),
		"HelpSelect": constants.VirtualButtonA.GetName(),
		"HelpHome":   constants.VirtualButtonMenu.GetName(),
		"HelpScroll": constants.VirtualButtonUp.GetName() + "/" + constants.VirtualButtonDown.GetName(),
	}
	items := make([]ui.FooterHelpItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, ui.FooterHelpItem{ButtonName: buttons[id], HelpText: a.tr.T(id)})
	}
	return items
}
