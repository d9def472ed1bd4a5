package mode

func normalMode(k KeyMap) *modeDef {
	return &modeDef{
		routes: map[Tooltip][]route{
			TipInitial: {
				{k.Left, moveCursor(-1, 0)},
				{k.Down, moveCursor(0, 1)},
				{k.Up, moveCursor(0, -1)},
				{k.Right, moveCursor(1, 0)},
				{k.Edit, changeTo(Edit)},
				{k.Move, changeTo(Move)},
				{k.Detail, openDetail},
				{k.Help, changeTo(Help)},
				{k.Save, setTooltip(TipSave)},
				{k.Unit, toggleUnit},
				{k.Refresh, refresh},
				{k.Quit, quit},
			},
			TipSave: {
				{k.Confirm, save},
				{k.Cancel, setTooltip(TipInitial)},
			},
		},
		fallback: func(m *Machine, ctx Context, key Key) Outcome {
			if m.Tooltip() == TipSaveFailed {
				m.setTooltip(TipInitial)
			}
			return OutcomeNone
		},
		mount: func(m *Machine, ctx Context) Outcome {
			ctx.Grid().SetHighlightColor(ColorNormal)
			return OutcomeNone
		},
	}
}

func openDetail(m *Machine, ctx Context, k Key) Outcome {
	if ctx.Grid().Selected() == nil {
		return OutcomeNone
	}
	return m.ChangeMode(ctx, Detail)
}

func save(m *Machine, ctx Context, k Key) Outcome {
	if err := ctx.Save(); err != nil {
		m.saveErr = err
		m.setTooltip(TipSaveFailed)
		return OutcomeNone
	}
	m.saveErr = nil
	m.setTooltip(TipInitial)
	return OutcomeNone
}

func refresh(m *Machine, ctx Context, k Key) Outcome { return OutcomeRefresh }

func quit(m *Machine, ctx Context, k Key) Outcome { return OutcomeQuit }
