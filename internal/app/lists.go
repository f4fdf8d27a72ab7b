package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/BrandonKowalski/doomdex/pkg/gateway"
	"github.com/BrandonKowalski/doomdex/pkg/ui"
	"github.com/BrandonKowalski/doomdex/pkg/view"
)

func (a *App) demons(ctx context.Context, input any) (any, error) {
	lv := view.NewListView[gateway.DemonDetail](view.SourceFuncs[gateway.DemonDetail]{
		ListFunc:   a.gw.ListDemons,
		DetailFunc: a.gw.DemonDetail,
	}, a.listOptions("demons", "FailedLoadDemons"))
	return runList(ctx, a, lv, listTitles{loading: a.tr.T("Demons"), countID: "DemonsCount"}, input)
}

func (a *App) weapons(ctx context.Context, input any) (any, error) {
	lv := view.NewListView[gateway.WeaponDetail](view.SourceFuncs[gateway.WeaponDetail]{
		ListFunc:   a.gw.ListWeapons,
		DetailFunc: a.gw.WeaponDetail,
	}, a.listOptions("weapons", "FailedLoadWeapons"))
	return runList(ctx, a, lv, listTitles{loading: a.tr.T("Weapons"), countID: "WeaponsCount"}, input)
}

func (a *App) listOptions(kind, failureID string) view.ListOptions {
	return view.ListOptions{
		Kind:                 kind,
		FailureMessage:       a.tr.T(failureID),
		RowFailureMessage:    a.tr.T("RowFailed"),
		MaxConcurrentFetches: a.maxFetches,
		KeySource:            a.keySource,
		Logger:               a.logger,
	}
}

// listTitles names a list before and after it loads.
type listTitles struct {
	loading string
	countID string // Plural message taking the number of rows
}

// runList mounts lv for as long as the list is on screen.
func runList[D gateway.Detail](ctx context.Context, a *App, lv *view.ListView[D], titles listTitles, input any) (ListResult, error) {
	in, _ := input.(ListInput)

	lv.Mount(ctx)
	defer lv.Unmount()

	options := ui.ListOptions{
		Title: titles.loading,
		Source: ui.ListSourceFunc(func() ui.ListSnapshot {
			version := lv.Version()
			snap := listSnapshot(lv.State(), version)
			if snap.Status == ui.ContentReady {
				snap.Title = a.tr.Plural(titles.countID, len(snap.Items))
			}
			return snap
		}),
		LoadingText:     a.tr.T("Loading"),
		EmptyText:       a.tr.T("EmptyList"),
		FooterHelpItems: a.footer("HelpBack", "HelpSelect", "HelpHome"),
		IdleHelpItems:   a.footer("HelpBack", "HelpHome"),
		FetchImage:      a.fetchImage,
		Context:         ctx,
	}
	if in.Resume != nil {
		options.SelectedIndex = in.Resume.Selected
		options.VisibleStart = in.Resume.VisibleStart
	}

	for {
		res, err := a.runList(options)
		if ui.IsCancelled(err) {
			return ListResult{Action: ListActionBack}, nil
		}
		if err != nil {
			return ListResult{}, err
		}
		if res.Action == ui.ListActionMenu {
			return ListResult{Action: ListActionHome}, nil
		}

		key, err := lv.Select(res.Selected)
		if err != nil {
			if errors.Is(err, view.ErrNotSelectable) || errors.Is(err, view.ErrNoSuchRow) {
				a.logger.Warn("row not selectable", "index", res.Selected, "error", err)
				options.SelectedIndex = res.Selected
				options.VisibleStart = res.VisibleStart
				continue
			}
			return ListResult{}, fmt.Errorf("select row %d: %w", res.Selected, err)
		}

		return ListResult{
			Action: ListActionOpen,
			Key:    key,
			Resume: ListResume{Selected: res.Selected, VisibleStart: res.VisibleStart},
		}, nil
	}
}

// listSnapshot renders a list view state as screen content. Failed rows keep
// their key as text so the user can see which entry is missing.
func listSnapshot[D gateway.Detail](state view.State[[]view.Row[D]], version uint64) ui.ListSnapshot {
	snap := ui.ListSnapshot{Version: version}

	switch state.Status {
	case view.StatusLoading:
		snap.Status = ui.ContentLoading
		return snap
	case view.StatusFailed:
		snap.Status = ui.ContentFailed
		snap.Message = state.Reason
		return snap
	}

	snap.Status = ui.ContentReady
	snap.Items = make([]ui.MenuItem, len(state.Value))
	for i, row := range state.Value {
		item := ui.MenuItem{Text: row.Key, Metadata: row.Key}
		switch row.State.Status {
		case view.StatusLoading:
			item.Status = ui.ContentLoading
		case view.StatusFailed:
			item.Status = ui.ContentFailed
			item.Text = fmt.Sprintf("%s (%s)", row.Key, row.State.Reason)
		case view.StatusLoaded:
			item.Status = ui.ContentReady
			item.Text = row.State.Value.DisplayName()
			item.ImageURL = row.State.Value.ImageURL()
		}
		snap.Items[i] = item
	}
	return snap
}
