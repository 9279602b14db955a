package main

import (
	"fmt"

	"github.com/slatetui/slate/app"
	"github.com/slatetui/slate/data"
	"github.com/slatetui/slate/layout"
	"github.com/slatetui/slate/state"
	"github.com/slatetui/slate/terminal"
	"github.com/slatetui/slate/theme"
	"github.com/slatetui/slate/widget"
)

// taskScreen is the demo's single view: a task list over a memory store
// with an input row for adding entries.
type taskScreen struct {
	shell *app.Shell
	store *data.MemoryStore

	panel *widget.Panel
	list  *widget.List
	input *widget.TextInput

	// ids maps list rows to store item ids
	ids []int

	unsubscribe func()
}

func newTaskScreen(sh *app.Shell, store *data.MemoryStore) *taskScreen {
	th := sh.Themes()
	t := &taskScreen{shell: sh, store: store}

	t.panel = widget.NewPanel("tasks-panel", th)
	t.panel.SetTitle("Tasks")
	t.panel.SetPadding(1)

	t.list = widget.NewList("tasks-list", th)
	t.input = widget.NewTextInput("tasks-input", th)
	t.input.SetPlaceholder("new task, Enter to add")

	stack := widget.NewVStack("tasks-stack", 1)
	stack.AddConstrained(t.list, layout.Constraint{Width: layout.Fill(), Height: layout.Fill()})
	stack.AddConstrained(t.input, layout.Constraint{Width: layout.Fill(), Height: layout.Abs(1)})
	t.panel.AddConstrained(stack, layout.Constraint{Width: layout.Fill(), Height: layout.Fill()})

	t.input.OnSubmit = t.addTask
	t.list.OnActivate = func(i int) { t.toggleAt(i) }

	h := sh.Handlers()
	h.Register(actToggleDone, t.toggleSelected)
	h.Register(actDeleteTask, t.deleteSelected)
	h.Register(actClearDone, t.clearDone)

	t.unsubscribe = store.Subscribe(t.refresh)
	t.refresh()
	return t
}

func (t *taskScreen) ID() string          { return screenTasks }
func (t *taskScreen) Root() widget.Widget { return t.panel }

func (t *taskScreen) OnState(st state.AppState) {
	items := t.store.GetAll()
	done := 0
	for _, it := range items {
		if it.Done {
			done++
		}
	}
	sections := []widget.BarSection{
		{Label: "items", Value: fmt.Sprintf("%d", len(items)), Role: theme.RoleStatusText, Priority: 2},
		{Label: "done", Value: fmt.Sprintf("%d", done), Role: theme.RoleSuccess, Priority: 1},
		{Label: "theme", Value: t.shell.Themes().Active(), Role: theme.RoleMuted, Priority: 0},
	}
	if clock, ok := st.Local.(string); ok && clock != "" {
		sections = append(sections, widget.BarSection{
			Label: "time", Value: clock, Role: theme.RoleStatusText, Priority: 1,
		})
	}
	t.shell.StatusBar().SetSections(sections)
}

func (t *taskScreen) HandleKey(ev terminal.KeyEvent) bool {
	if ev.Key != terminal.KeyRune {
		return false
	}
	switch ev.Rune {
	case 'd':
		t.toggleSelected()
		return true
	case 'x':
		t.deleteSelected()
		return true
	}
	return false
}

func (t *taskScreen) Dispose() {
	t.unsubscribe()
	h := t.shell.Handlers()
	h.Unregister(actToggleDone)
	h.Unregister(actDeleteTask)
	h.Unregister(actClearDone)
}

// refresh rebuilds the list rows from the store. The store notifies on
// the loop goroutine, so no locking is needed here.
func (t *taskScreen) refresh() {
	items := t.store.GetAll()
	rows := make([]widget.ListItem, len(items))
	t.ids = t.ids[:0]
	for i, it := range items {
		role := theme.RoleText
		if it.Done {
			role = theme.RoleMuted
		}
		rows[i] = widget.ListItem{Text: it.Title, Role: role, Done: it.Done}
		t.ids = append(t.ids, it.ID)
	}
	t.list.SetItems(rows)
}

func (t *taskScreen) addTask(text string) {
	if text == "" {
		return
	}
	if _, err := t.store.Add(data.Item{Title: text}); err != nil {
		t.shell.Status(err.Error(), theme.RoleError)
		return
	}
	t.input.Clear()
	t.shell.Dispatch(state.Message{Kind: state.KindStatus, Payload: "added: " + text})
}

func (t *taskScreen) selectedID() (int, bool) {
	i := t.list.Cursor()
	if i < 0 || i >= len(t.ids) {
		return 0, false
	}
	return t.ids[i], true
}

func (t *taskScreen) toggleAt(i int) {
	if i < 0 || i >= len(t.ids) {
		return
	}
	t.toggle(t.ids[i])
}

func (t *taskScreen) toggleSelected() error {
	id, ok := t.selectedID()
	if !ok {
		return nil
	}
	t.toggle(id)
	return nil
}

func (t *taskScreen) toggle(id int) {
	for _, it := range t.store.GetAll() {
		if it.ID == id {
			done := !it.Done
			if err := t.store.Update(id, data.Changes{Done: &done}); err != nil {
				t.shell.Status(err.Error(), theme.RoleError)
			}
			return
		}
	}
}

func (t *taskScreen) deleteSelected() error {
	id, ok := t.selectedID()
	if !ok {
		return nil
	}
	if err := t.store.Delete(id); err != nil {
		return err
	}
	t.shell.Dispatch(state.Message{Kind: state.KindStatus, Payload: "deleted"})
	return nil
}

func (t *taskScreen) clearDone() error {
	for _, it := range t.store.GetAll() {
		if it.Done {
			if err := t.store.Delete(it.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
