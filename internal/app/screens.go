package app

import "github.com/BrandonKowalski/doomdex/pkg/ui/router"

const (
	ScreenHome router.Screen = iota
	ScreenDemons
	ScreenDemonDetail
	ScreenWeapons
	ScreenWeaponDetail
)

// Route patterns, one per screen.
const (
	RouteHome         = "home"
	RouteDemons       = "demons"
	RouteDemonDetail  = "demonDetail/{key}"
	RouteWeapons      = "weapons"
	RouteWeaponDetail = "weaponDetail/{key}"
)

// HomeInput restores the highlighted option when returning home.
type HomeInput struct {
	Selected int
}

// HomeResult is the choice made on the home screen.
type HomeResult struct {
	Target   router.Screen // ScreenDemons or ScreenWeapons, ScreenExit on back
	Selected int
}

// ListInput is the input of the demon and weapon lists.
type ListInput struct {
	Resume *ListResume
}

// ListResume is the list position to restore after coming back from a detail.
type ListResume struct {
	Selected     int
	VisibleStart int
}

// ListAction is how the user left a list.
type ListAction int

const (
	ListActionOpen ListAction = iota // A row was opened, Key is set
	ListActionBack
	ListActionHome
)

// ListResult is the outcome of a list screen.
type ListResult struct {
	Action ListAction
	Key    string
	Resume ListResume
}

// DetailInput names the entity a detail screen shows.
type DetailInput struct {
	Key string
}

func (d DetailInput) RouteKey() string { return d.Key }

// DetailAction is how the user left a detail screen.
type DetailAction int

const (
	DetailActionBack DetailAction = iota
	DetailActionHome
)

// DetailResult is the outcome of a detail screen.
type DetailResult struct {
	Action DetailAction
}

// detailScreenOf maps a list screen to the detail screen its rows open.
func detailScreenOf(list router.Screen) router.Screen {
	if list == ScreenWeapons {
		return ScreenWeaponDetail
	}
	return ScreenDemonDetail
}
