package terminal

import "github.com/gdamore/tcell/v2"

// KeyKind identifies which editor key an input event represents.
type KeyKind int

const (
	KeyNone KeyKind = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEscape
	KeyCtrlF
	KeyCtrlQ
	KeyCtrlS
	KeyResize
)

// Key is a single decoded input event. Rune is set only for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// convertEvent decodes a tcell event into a Key. Events the editor does
// not handle come back as KeyNone.
func convertEvent(ev tcell.Event) Key {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKey(e)
	case *tcell.EventResize:
		return Key{Kind: KeyResize}
	default:
		return Key{Kind: KeyNone}
	}
}

func convertKey(e *tcell.EventKey) Key {
	switch e.Key() {
	case tcell.KeyRune:
		return Key{Kind: KeyRune, Rune: e.Rune()}
	case tcell.KeyTab:
		// Tab inserts a literal tab character.
		return Key{Kind: KeyRune, Rune: '\t'}
	case tcell.KeyEnter:
		return Key{Kind: KeyEnter}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Key{Kind: KeyBackspace}
	case tcell.KeyDelete:
		return Key{Kind: KeyDelete}
	case tcell.KeyUp:
		return Key{Kind: KeyUp}
	case tcell.KeyDown:
		return Key{Kind: KeyDown}
	case tcell.KeyLeft:
		return Key{Kind: KeyLeft}
	case tcell.KeyRight:
		return Key{Kind: KeyRight}
	case tcell.KeyPgUp:
		return Key{Kind: KeyPageUp}
	case tcell.KeyPgDn:
		return Key{Kind: KeyPageDown}
	case tcell.KeyHome:
		return Key{Kind: KeyHome}
	case tcell.KeyEnd:
		return Key{Kind: KeyEnd}
	case tcell.KeyEscape:
		return Key{Kind: KeyEscape}
	case tcell.KeyCtrlF:
		return Key{Kind: KeyCtrlF}
	case tcell.KeyCtrlQ:
		return Key{Kind: KeyCtrlQ}
	case tcell.KeyCtrlS:
		return Key{Kind: KeyCtrlS}
	default:
		return Key{Kind: KeyNone}
	}
}
