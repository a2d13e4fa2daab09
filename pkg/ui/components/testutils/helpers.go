// Package testutils builds Bubble Tea key messages for component tests.
package testutils

import (
	tea "charm.land/bubbletea/v2"
)

// NewKeyPressMsg creates a KeyPressMsg for a special key code.
func NewKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// NewTextKeyPressMsg creates a KeyPressMsg that types text.
func NewTextKeyPressMsg(text string) tea.KeyPressMsg {
	if len(text) == 0 {
		return tea.KeyPressMsg(tea.Key{})
	}
	return tea.KeyPressMsg(tea.Key{
		Code: []rune(text)[0],
		Text: text,
	})
}

// NewCtrlKeyPressMsg creates a ctrl+char KeyPressMsg.
func NewCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

// TypeKeys returns one KeyPressMsg per rune of text.
func TypeKeys(text string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, NewTextKeyPressMsg(string(r)))
	}
	return msgs
}

var (
	TestKeyUp     = NewKeyPressMsg(tea.KeyUp)
	TestKeyDown   = NewKeyPressMsg(tea.KeyDown)
	TestKeyEnter  = NewKeyPressMsg(tea.KeyEnter)
	TestKeyEsc    = NewKeyPressMsg(tea.KeyEscape)
	TestKeyHome   = NewKeyPressMsg(tea.KeyHome)
	TestKeyEnd    = NewKeyPressMsg(tea.KeyEnd)
	TestKeyPgUp   = NewKeyPressMsg(tea.KeyPgUp)
	TestKeyPgDown = NewKeyPressMsg(tea.KeyPgDown)

	TestKeyCtrlC = NewCtrlKeyPressMsg('c')
	TestKeyCtrlS = NewCtrlKeyPressMsg('s')
	TestKeyCtrlY = NewCtrlKeyPressMsg('y')
)
