package mode

import (
	"errors"

	"github.com/rileyhilliard/thermonitor/internal/grid"
)

func editMode(k KeyMap) *modeDef {
	return &modeDef{
		routes: map[Tooltip][]route{
			TipInitial: {
				{k.Left, moveCursor(-1, 0)},
				{k.Down, moveCursor(0, 1)},
				{k.Up, moveCursor(0, -1)},
				{k.Right, moveCursor(1, 0)},
				{k.Add, startAdd},
				{k.Rename, startRename},
				{k.Delete, startDelete},
				{k.Help, changeTo(Help)},
				{k.Done, changeTo(Normal)},
			},
			TipLabelPrompt: {
				{k.Submit, setTooltip(TipIDPrompt)},
				{k.Abort, cancelAdd},
				{k.Backspace, pop(func(m *Machine) { m.label.Pop() })},
			},
			TipIDPrompt: {
				{k.Submit, submitAdd},
				{k.Abort, cancelAdd},
				{k.Backspace, pop(func(m *Machine) { m.id.Pop() })},
			},
			TipRenamePrompt: {
				{k.Submit, submitRename},
				{k.Abort, cancelRename},
				{k.Backspace, pop(func(m *Machine) { m.rename.Pop() })},
			},
			TipDelete: {
				{k.Confirm, confirmDelete},
			},
		},
		fallback: editFallback,
		mount: func(m *Machine, ctx Context) Outcome {
			ctx.Grid().SetHighlightColor(ColorEdit)
			return OutcomeNone
		},
	}
}

// editFallback types into the active prompt, dismisses warnings, and
// cancels a pending delete.
func editFallback(m *Machine, ctx Context, k Key) Outcome {
	switch m.Tooltip() {
	case TipLabelPrompt:
		m.label.Append(printable(k))
	case TipIDPrompt:
		m.id.Append(printable(k))
	case TipRenamePrompt:
		m.rename.Append(printable(k))
	case TipBlankID, TipDuplicateID:
		m.id.Reset()
		m.setTooltip(TipIDPrompt)
	case TipDelete:
		m.setTooltip(TipInitial)
	}
	return OutcomeNone
}

// printable drops named keys like "tab" or "ctrl+a" so only typed
// characters reach a buffer.
func printable(k Key) string {
	s := string(k)
	if len([]rune(s)) != 1 {
		return ""
	}
	return s
}

func startAdd(m *Machine, ctx Context, k Key) Outcome {
	m.label.Reset()
	m.id.Reset()
	m.setTooltip(TipLabelPrompt)
	return OutcomeNone
}

func cancelAdd(m *Machine, ctx Context, k Key) Outcome {
	m.label.Reset()
	m.id.Reset()
	m.setTooltip(TipInitial)
	return OutcomeNone
}

func submitAdd(m *Machine, ctx Context, k Key) Outcome {
	err := ctx.Grid().Add(m.id.String(), m.label.String())
	switch {
	case errors.Is(err, grid.ErrBlankID):
		m.setTooltip(TipBlankID)
		return OutcomeNone
	case errors.Is(err, grid.ErrDuplicateID):
		m.setTooltip(TipDuplicateID)
		return OutcomeNone
	}
	m.label.Reset()
	m.id.Reset()
	m.setTooltip(TipInitial)
	return OutcomeRefresh
}

func startRename(m *Machine, ctx Context, k Key) Outcome {
	if ctx.Grid().Selected() == nil {
		return OutcomeNone
	}
	m.rename.Reset()
	m.setTooltip(TipRenamePrompt)
	return OutcomeNone
}

func cancelRename(m *Machine, ctx Context, k Key) Outcome {
	m.rename.Reset()
	m.setTooltip(TipInitial)
	return OutcomeNone
}

// submitRename leaves the label alone when nothing was typed.
func submitRename(m *Machine, ctx Context, k Key) Outcome {
	if label := m.rename.String(); label != "" {
		ctx.Grid().Rename(label)
	}
	return cancelRename(m, ctx, k)
}

func startDelete(m *Machine, ctx Context, k Key) Outcome {
	if ctx.Grid().Selected() == nil {
		return OutcomeNone
	}
	m.setTooltip(TipDelete)
	return OutcomeNone
}

func confirmDelete(m *Machine, ctx Context, k Key) Outcome {
	ctx.Grid().Remove()
	m.setTooltip(TipInitial)
	return OutcomeNone
}

func pop(f func(m *Machine)) handler {
	return func(m *Machine, ctx Context, k Key) Outcome {
		f(m)
		return OutcomeNone
	}
}
