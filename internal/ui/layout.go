package ui

// Layout for a 320x240 panel.

// DefaultScreens builds the viewfinder, settings and numeric keypad screens.
// Settings edit buttons carry the index of the field they edit.
func DefaultScreens() *ScreenSet {
	viewfinder := &Screen{
		ID: ScreenViewfinder,
		Regions: []*Region{
			{Bounds: Rect{5, 180, 120, 60}, BgName: "start", Action: Do(ActionStart)},
			{Bounds: Rect{130, 180, 60, 60}, BgName: "cog", Action: Do(ActionOpenSettings)},
			{Bounds: Rect{195, 180, 120, 60}, BgName: "stop", Action: Do(ActionStop)},
		},
	}

	settingsScreen := &Screen{
		ID: ScreenSettings,
		Regions: []*Region{
			{Bounds: Rect{260, 60, 60, 60}, BgName: "cog", Action: DoWith(ActionEditField, 0)},
			{Bounds: Rect{260, 120, 60, 60}, BgName: "cog", Action: DoWith(ActionEditField, 1)},
			{Bounds: Rect{0, 180, 160, 60}, BgName: "ok", Action: Do(ActionSettingsDone)},
			{Bounds: Rect{250, 180, 70, 60}, BgName: "power", Action: Do(ActionShutdown)},
		},
	}

	numeric := &Screen{
		ID: ScreenNumeric,
		Regions: []*Region{
			{Bounds: Rect{0, 0, 320, 60}, BgName: "box"},
			{Bounds: Rect{180, 120, 60, 60}, BgName: "0", Action: DoWith(ActionDigit, 0)},
			{Bounds: Rect{0, 180, 60, 60}, BgName: "1", Action: DoWith(ActionDigit, 1)},
			{Bounds: Rect{120, 180, 60, 60}, BgName: "3", Action: DoWith(ActionDigit, 3)},
			{Bounds: Rect{60, 180, 60, 60}, BgName: "2", Action: DoWith(ActionDigit, 2)},
			{Bounds: Rect{0, 120, 60, 60}, BgName: "4", Action: DoWith(ActionDigit, 4)},
			{Bounds: Rect{60, 120, 60, 60}, BgName: "5", Action: DoWith(ActionDigit, 5)},
			{Bounds: Rect{120, 120, 60, 60}, BgName: "6", Action: DoWith(ActionDigit, 6)},
			{Bounds: Rect{0, 60, 60, 60}, BgName: "7", Action: DoWith(ActionDigit, 7)},
			{Bounds: Rect{60, 60, 60, 60}, BgName: "8", Action: DoWith(ActionDigit, 8)},
			{Bounds: Rect{120, 60, 60, 60}, BgName: "9", Action: DoWith(ActionDigit, 9)},
			{Bounds: Rect{240, 120, 80, 60}, BgName: "del", Action: Do(ActionDelete)},
			{Bounds: Rect{180, 180, 140, 60}, BgName: "ok", Action: Do(ActionConfirm)},
			{Bounds: Rect{180, 60, 140, 60}, BgName: "cancel", Action: Do(ActionCancel)},
		},
	}

	return NewScreenSet(viewfinder, settingsScreen, numeric)
}
