// Package keybind matches tcell key events against named key chords such
// as "down", "shift+pgdn" or "ctrl+c".
package keybind

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
)

// Keybind is a set of equivalent key chords with an optional help entry.
// Disabled keybinds never match and are hidden from help.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

// Help is the text a help bar shows for a keybind.
type Help struct {
	Key  string
	Desc string
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.SetKeys(keys...)
	}
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.SetHelp(key, desc)
	}
}

// WithDisabled creates the keybind in the disabled state.
func WithDisabled() Option {
	return func(k *Keybind) {
		k.disabled = true
	}
}

// Keys returns the normalized chords.
func (k Keybind) Keys() []string {
	return k.keys
}

// SetKeys replaces the chords. Names that do not normalize to a chord are
// dropped.
func (k *Keybind) SetKeys(keys ...string) {
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		if key = normalizeKey(key); key != "" {
			normalized = append(normalized, key)
		}
	}
	k.keys = normalized
}

func (k Keybind) Help() Help {
	return k.help
}

func (k *Keybind) SetHelp(key, desc string) {
	k.help = Help{Key: key, Desc: desc}
}

// Enabled reports whether the keybind matches events and shows in help.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Matches reports whether event triggers any of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	key := eventChord(event)
	return slices.ContainsFunc(keybinds, func(k Keybind) bool {
		return k.Enabled() && slices.Contains(k.keys, key)
	})
}

type modifier uint8

const (
	modCtrl modifier = 1 << iota
	modAlt
	modShift
	modMeta
)

// modifierNames is also the canonical order of modifiers in a chord.
var modifierNames = []struct {
	mod  modifier
	name string
}{
	{modCtrl, "ctrl"},
	{modAlt, "alt"},
	{modShift, "shift"},
	{modMeta, "meta"},
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "backtab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}

// chord formats a key with its modifiers in canonical order. With a
// modifier held a single-rune key is lower-cased, so "shift+G" and
// "shift+g" are the same chord.
func chord(mods modifier, key string) string {
	switch key {
	case "":
		return ""
	case "backtab":
		mods |= modShift
		key = "tab"
	}
	if mods == 0 {
		return key
	}
	if utf8.RuneCountInString(key) == 1 {
		key = strings.ToLower(key)
	}
	var b strings.Builder
	for _, m := range modifierNames {
		if mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(key)
	return b.String()
}

// normalizeKey turns a configured key name, or a tcell key name such as
// "Ctrl-C" or "Rune[x]", into a chord. It returns "" when no key remains.
func normalizeKey(name string) string {
	if name == " " {
		return "space"
	}
	var (
		mods modifier
		key  string
	)
	for _, part := range strings.Split(strings.TrimSpace(name), "+") {
		part = strings.TrimSpace(part)
		switch lower := strings.ToLower(part); {
		case part == "":
		case lower == "ctrl" || lower == "control":
			mods |= modCtrl
		case lower == "alt":
			mods |= modAlt
		case lower == "shift":
			mods |= modShift
		case lower == "meta":
			mods |= modMeta
		case strings.HasPrefix(lower, "ctrl-") && len(part) > len("ctrl-"):
			mods |= modCtrl
			key = primaryKey(part[len("ctrl-"):])
		default:
			key = primaryKey(part)
		}
	}
	return chord(mods, key)
}

func primaryKey(name string) string {
	if strings.HasPrefix(name, "Rune[") && strings.HasSuffix(name, "]") && len(name) > len("Rune[]") {
		name = name[len("Rune[") : len(name)-1]
	}
	if name == " " {
		return "space"
	}
	if utf8.RuneCountInString(name) == 1 {
		return name
	}
	name = strings.ToLower(name)
	if alias, ok := keyAliases[name]; ok {
		return alias
	}
	return name
}

func eventChord(event *tcell.EventKey) string {
	key := event.Key()
	name, named := keyNames[key]
	switch {
	case key == tcell.KeyRune:
		name = primaryKey(event.Str())
	case !named && key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		// Tab, Enter and Backspace share codes with ctrl+i, ctrl+m and
		// ctrl+h and are named above.
		return chord(modCtrl, string(rune('a'+(key-tcell.KeyCtrlA))))
	}
	if name == "" {
		return normalizeKey(event.Name())
	}

	var mods modifier
	eventMods := event.Modifiers()
	for _, m := range []struct {
		mask tcell.ModMask
		mod  modifier
	}{
		{tcell.ModCtrl, modCtrl},
		{tcell.ModAlt, modAlt},
		{tcell.ModShift, modShift},
		{tcell.ModMeta, modMeta},
	} {
		if eventMods&m.mask != 0 {
			mods |= m.mod
		}
	}
	return chord(mods, name)
}
