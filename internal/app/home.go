package app

import (
	"context"

	"github.com/BrandonKowalski/doomdex/pkg/ui"
	"github.com/BrandonKowalski/doomdex/pkg/ui/router"
)

func (a *App) home(_ context.Context, input any) (any, error) {
	in, _ := input.(HomeInput)

	options := []ui.SelectionOption{
		{DisplayName: a.tr.T("Demons"), Value: ScreenDemons},
		{DisplayName: a.tr.T("Weapons"), Value: ScreenWeapons},
	}

	res, err := a.runHome(a.tr.T("HomeMessage"), options, a.footer("HelpQuit", "HelpSelect"), ui.SelectionMessageSettings{
		Title:            a.tr.T("AppTitle"),
		InitialSelection: in.Selected,
	})
	if ui.IsCancelled(err) {
		return HomeResult{Target: router.ScreenExit}, nil
	}
	if err != nil {
		return nil, err
	}

	target, ok := res.SelectedValue.(router.Screen)
	if !ok {
		return HomeResult{Target: router.ScreenExit}, nil
	}
	return HomeResult{Target: target, Selected: res.SelectedIndex}, nil
}
