package mode

import "github.com/rileyhilliard/thermonitor/internal/series"

func moveMode(k KeyMap) *modeDef {
	return &modeDef{
		routes: map[Tooltip][]route{
			TipInitial: {
				{k.Left, moveSensor(-1, 0)},
				{k.Down, moveSensor(0, 1)},
				{k.Up, moveSensor(0, -1)},
				{k.Right, moveSensor(1, 0)},
				{k.Help, changeTo(Help)},
				{k.Done, changeTo(Normal)},
			},
		},
		fallback: ignore,
		mount: func(m *Machine, ctx Context) Outcome {
			ctx.Grid().SetHighlightColor(ColorMove)
			return OutcomeNone
		},
	}
}

func moveSensor(dx, dy int) handler {
	return func(m *Machine, ctx Context, k Key) Outcome {
		ctx.Grid().MoveSensor(dx, dy)
		return OutcomeNone
	}
}

func detailMode(k KeyMap) *modeDef {
	return &modeDef{
		routes: map[Tooltip][]route{
			TipInitial: {
				{k.Minute, setInterval(series.Minute)},
				{k.Hour, setInterval(series.Hour)},
				{k.Day, setInterval(series.Day)},
				{k.Refresh, reloadDetail},
				{k.Unit, toggleUnit},
				{k.Help, changeTo(Help)},
				{k.Back, closeDetail},
			},
		},
		fallback: ignore,
		mount: func(m *Machine, ctx Context) Outcome {
			// Coming back from Help keeps what is already loaded.
			if m.previous != Normal {
				return OutcomeNone
			}
			s := ctx.Grid().Selected()
			if s == nil {
				return OutcomeNone
			}
			m.detail.SensorID = s.ID
			m.detail.Label = s.Label
			return reloadDetail(m, ctx, "")
		},
	}
}

func setInterval(iv series.Interval) handler {
	return func(m *Machine, ctx Context, k Key) Outcome {
		m.detail.Interval = iv
		return OutcomeNone
	}
}

func reloadDetail(m *Machine, ctx Context, k Key) Outcome {
	m.detail.Data = nil
	m.detail.Loading = true
	m.detail.Seq++
	return OutcomeFetchDetail
}

func closeDetail(m *Machine, ctx Context, k Key) Outcome {
	m.detail.Data = nil
	m.detail.Loading = false
	m.detail.Seq++
	return m.ChangeMode(ctx, Normal)
}

// helpMode returns to whichever mode opened it on any key.
func helpMode() *modeDef {
	return &modeDef{
		fallback: func(m *Machine, ctx Context, k Key) Outcome {
			return m.ChangeMode(ctx, m.previous)
		},
	}
}
