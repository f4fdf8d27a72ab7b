package app

import (
	"context"

	"github.com/BrandonKowalski/doomdex/internal/i18n"
	"github.com/BrandonKowalski/doomdex/pkg/gateway"
	"github.com/BrandonKowalski/doomdex/pkg/ui"
	"github.com/BrandonKowalski/doomdex/pkg/view"
)

func (a *App) demonDetail(ctx context.Context, input any) (any, error) {
	in, _ := input.(DetailInput)
	dv := view.NewDetailView[gateway.DemonDetail](in.Key, a.gw.DemonDetail, a.detailOptions("demons", "FailedLoadDemon", in.Key))
	return runDetail(ctx, a, dv)
}

func (a *App) weaponDetail(ctx context.Context, input any) (any, error) {
	in, _ := input.(DetailInput)
	dv := view.NewDetailView[gateway.WeaponDetail](in.Key, a.gw.WeaponDetail, a.detailOptions("weapons", "FailedLoadWeapon", in.Key))
	return runDetail(ctx, a, dv)
}

func (a *App) detailOptions(kind, failureID, key string) view.DetailOptions {
	return view.DetailOptions{
		Kind:           kind,
		FailureMessage: a.tr.Tf(failureID, map[string]any{"Key": key}),
		Logger:         a.logger,
	}
}

// runDetail mounts dv for as long as the detail is on screen.
func runDetail[D gateway.Detail](ctx context.Context, a *App, dv *view.DetailView[D]) (DetailResult, error) {
	dv.Mount(ctx)
	defer dv.Unmount()

	res, err := a.runDetail(ui.DetailScreenOptions{
		Source: ui.DetailSourceFunc(func() ui.DetailSnapshot {
			version := dv.Version()
			return detailSnapshot(dv.Key(), dv.State(), version, a.tr)
		}),
		LoadingText:     a.tr.T("Loading"),
		FooterHelpItems: a.footer("HelpBack", "HelpScroll", "HelpHome"),
		FetchImage:      a.fetchImage,
		Context:         ctx,
	})
	if ui.IsCancelled(err) {
		return DetailResult{Action: DetailActionBack}, nil
	}
	if err != nil {
		return DetailResult{}, err
	}
	if res.Action == ui.DetailActionMenu {
		return DetailResult{Action: DetailActionHome}, nil
	}
	return DetailResult{Action: DetailActionBack}, nil
}

// detailSnapshot renders a detail view state as screen content, one labeled
// row per field in display order.
func detailSnapshot[D gateway.Detail](key string, state view.State[D], version uint64, tr *i18n.Translator) ui.DetailSnapshot {
	snap := ui.DetailSnapshot{Title: key, Version: version}

	switch state.Status {
	case view.StatusLoading:
		snap.Status = ui.ContentLoading
		return snap
	case view.StatusFailed:
		snap.Status = ui.ContentFailed
		snap.Message = state.Reason
		if gateway.IsNotFound(state.Err) {
			snap.Message = tr.Tf("NotFound", map[string]any{"Key": key})
		}
		return snap
	}

	fields := state.Value.Fields()
	snap.Status = ui.ContentReady
	snap.Title = state.Value.DisplayName()
	snap.ImageURL = state.Value.ImageURL()
	snap.Rows = make([]ui.MetadataItem, len(fields))
	for i, f := range fields {
		snap.Rows[i] = ui.MetadataItem{Label: tr.T(f.Label), Value: f.Value}
	}
	return snap
}
