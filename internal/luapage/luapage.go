// Package luapage runs a page written in Lua.
//
// A script defines any of the global functions init(), enter(), update(dt),
// render() and input(event); missing ones are skipped. dt is in seconds.
// Drawing goes through the global table oled:
//
//	oled.pixel(x, y [, on])            oled.rect(x, y, w, h [, on])
//	oled.outline(x, y, w, h [, on])    oled.line(x0, y0, x1, y1 [, on])
//	oled.text(s, x, y [, opts])        oled.text_width(s [, opts])
//	oled.image(name, x, y [, opts])    oled.qr(payload, x, y [, opts])
//	oled.qr_size(payload [, opts])     oled.contrast(level)
//	oled.width()  oled.height()        oled.route(name)  oled.pop()
//
// on defaults to true. Text opts are {font, scale, align = "left" |
// "center" | "right", erase}; image opts are {scale, center_h, center_v,
// erase}; qr opts are {scale, erase}.
package luapage

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rook-computer/monoframe/internal/render"
	"github.com/rook-computer/monoframe/internal/state"
	lua "github.com/yuin/gopher-lua"
)

type Page struct {
	name string
	L    *lua.LState
	nav  state.Navigator

	d      render.Drawer
	width  int
	height int
	// goErr is the first Go error raised into Lua during the current call.
	goErr  error
	closed bool
}

// New compiles and runs chunk once so its globals are defined.
func New(name, chunk string, nav state.Navigator) (*Page, error) {
	p := &Page{name: name, L: lua.NewState(), nav: nav}
	p.L.SetGlobal("oled", p.module())
	if err := p.L.DoString(chunk); err != nil {
		p.L.Close()
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return p, nil
}

func LoadFile(path string, nav state.Navigator) (*Page, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(path, string(src), nav)
}

// Close releases the Lua state. Calling it again is a no-op.
func (p *Page) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.L.Close()
}

func (p *Page) Init() error  { return p.call("init") }
func (p *Page) Enter() error { return p.call("enter") }

func (p *Page) Update(dt time.Duration) error {
	return p.call("update", lua.LNumber(dt.Seconds()))
}

func (p *Page) Render(d render.Drawer) error {
	p.d = d
	p.width, p.height = d.Size()
	defer func() { p.d = nil }()
	return p.call("render")
}

func (p *Page) HandleInput(event string) error {
	return p.call("input", lua.LString(event))
}

func (p *Page) call(fn string, args ...lua.LValue) error {
	f := p.L.GetGlobal(fn)
	if f.Type() != lua.LTFunction {
		return nil
	}
	p.goErr = nil
	err := p.L.CallByParam(lua.P{Fn: f, NRet: 0, Protect: true}, args...)
	if p.goErr != nil {
		err, p.goErr = p.goErr, nil
		return err
	}
	if err != nil {
		return fmt.Errorf("%s: %s: %w", p.name, fn, err)
	}
	return nil
}

// fail records err and aborts the running Lua function.
func (p *Page) fail(L *lua.LState, err error) int {
	if p.goErr == nil {
		p.goErr = err
	}
	L.RaiseError("%s", err.Error())
	return 0
}

func (p *Page) drawer(L *lua.LState) render.Drawer {
	if p.d == nil {
		p.fail(L, fmt.Errorf("%s: drawing outside render()", p.name))
	}
	return p.d
}

func colorArg(L *lua.LState, n int) render.Color {
	if L.OptBool(n, true) {
		return render.On
	}
	return render.Off
}

func (p *Page) module() *lua.LTable {
	mod := p.L.NewTable()
	p.L.SetFuncs(mod, map[string]lua.LGFunction{
		"pixel": func(L *lua.LState) int {
			p.drawer(L).SetPixel(L.CheckInt(1), L.CheckInt(2), colorArg(L, 3))
			return 0
		},
		"rect": func(L *lua.LState) int {
			p.drawer(L).DrawRect(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), colorArg(L, 5))
			return 0
		},
		"outline": func(L *lua.LState) int {
			p.drawer(L).DrawOutlinedRect(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), colorArg(L, 5))
			return 0
		},
		"line": func(L *lua.LState) int {
			p.drawer(L).DrawLine(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), colorArg(L, 5))
			return 0
		},
		"text": func(L *lua.LState) int {
			d := p.drawer(L)
			if err := d.DrawText(L.CheckString(1), L.CheckInt(2), L.CheckInt(3), textStyle(L, 4)); err != nil {
				return p.fail(L, err)
			}
			return 0
		},
		"text_width": func(L *lua.LState) int {
			d := p.drawer(L)
			w, err := d.TextWidth(L.CheckString(1), textStyle(L, 2))
			if err != nil {
				return p.fail(L, err)
			}
			L.Push(lua.LNumber(w))
			return 1
		},
		"image": func(L *lua.LState) int {
			d := p.drawer(L)
			opts := L.OptTable(4, L.NewTable())
			err := d.DrawImage(L.CheckString(1), L.CheckInt(2), L.CheckInt(3), render.ImageOpts{
				Scale:   intField(opts, "scale"),
				CenterH: lua.LVAsBool(opts.RawGetString("center_h")),
				CenterV: lua.LVAsBool(opts.RawGetString("center_v")),
				Erase:   lua.LVAsBool(opts.RawGetString("erase")),
			})
			if err != nil {
				return p.fail(L, err)
			}
			return 0
		},
		"qr": func(L *lua.LState) int {
			d := p.drawer(L)
			if err := d.DrawQRCode(L.CheckString(1), L.CheckInt(2), L.CheckInt(3), qrOpts(L, 4)); err != nil {
				return p.fail(L, err)
			}
			return 0
		},
		"qr_size": func(L *lua.LState) int {
			d := p.drawer(L)
			size, err := d.QRCodeSize(L.CheckString(1), qrOpts(L, 2))
			if err != nil {
				return p.fail(L, err)
			}
			L.Push(lua.LNumber(size))
			return 1
		},
		"contrast": func(L *lua.LState) int {
			p.drawer(L).SetContrast(L.CheckInt(1))
			return 0
		},
		"width": func(L *lua.LState) int {
			L.Push(lua.LNumber(p.width))
			return 1
		},
		"height": func(L *lua.LState) int {
			L.Push(lua.LNumber(p.height))
			return 1
		},
		"route": func(L *lua.LState) int {
			if err := p.nav.SetRoute(L.CheckString(1)); err != nil {
				return p.fail(L, err)
			}
			return 0
		},
		"pop": func(L *lua.LState) int {
			if err := p.nav.Pop(); err != nil {
				return p.fail(L, err)
			}
			return 0
		},
	})
	return mod
}

func textStyle(L *lua.LState, n int) render.TextStyle {
	opts := L.OptTable(n, L.NewTable())
	style := render.TextStyle{
		Font:  lua.LVAsString(opts.RawGetString("font")),
		Scale: intField(opts, "scale"),
		Erase: lua.LVAsBool(opts.RawGetString("erase")),
	}
	switch strings.ToLower(lua.LVAsString(opts.RawGetString("align"))) {
	case "center", "centre":
		style.Align = render.TextAlignCenter
	case "right":
		style.Align = render.TextAlignRight
	}
	return style
}

func qrOpts(L *lua.LState, n int) render.QROpts {
	opts := L.OptTable(n, L.NewTable())
	return render.QROpts{
		Scale: intField(opts, "scale"),
		Erase: lua.LVAsBool(opts.RawGetString("erase")),
	}
}

func intField(t *lua.LTable, key string) int {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}
