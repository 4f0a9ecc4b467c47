package tui

import (
	"compareaid/searchui"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages the bridge turns View calls into.
type (
	loadingMsg     struct{ on bool }
	hideResultsMsg struct{}
	hideErrorMsg   struct{}
	showResultsMsg struct{ view searchui.ResultsView }
	showErrorMsg   struct{ text string }
	scrollMsg      struct{ section searchui.Section }
	searchDoneMsg  struct{ outcome searchui.Outcome }
	revealMsg      struct{ gen int }
)

// bridge is the searchui.View of the terminal UI. The controller calls it
// from a command goroutine; each call becomes a message delivered, in
// order, to Update through listen.
type bridge struct {
	ch chan tea.Msg
}

func newBridge() *bridge {
	return &bridge{ch: make(chan tea.Msg, 16)}
}

func (b *bridge) ShowLoading() { b.ch <- loadingMsg{on: true} }
func (b *bridge) HideLoading() { b.ch <- loadingMsg{on: false} }
func (b *bridge) HideResults() { b.ch <- hideResultsMsg{} }
func (b *bridge) HideError() { b.ch <- hideErrorMsg{} }
func (b *bridge) ShowResults(rv searchui.ResultsView) { b.ch <- showResultsMsg{view: rv} }
func (b *bridge) ShowError(message string) { b.ch <- showErrorMsg{text: message} }
func (b *bridge) ScrollTo(section searchui.Section) { b.ch <- scrollMsg{section: section} }

// listen waits for the next view message.
func (b *bridge) listen() tea.Cmd {
	return func() tea.Msg {
		return <-b.ch
	}
}
