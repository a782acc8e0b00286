package app

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/veandco/go-sdl2/sdl"
)

func TestEventName(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		event sdl.Event
		want  string
	}{
		{&sdl.QuitEvent{Type: sdl.QUIT}, "QUIT"},
		{&sdl.KeyboardEvent{Type: sdl.KEYDOWN}, "KEYDOWN"},
		{&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION}, "MOUSEMOTION"},
		{&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED}, "WINDOWEVENT_RESIZED"},
		{&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_MINIMIZED}, "WINDOWEVENT_MINIMIZED"},
		{&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: 0xEE}, "UNKNOWN_WINDOWEVENT_EE"},
		{&sdl.UserEvent{Type: 0x9001}, "UNKNOWN_SDL_EVENT_9001"},
	}

	for _, test := range tests {
		c.Run(test.want, func(c *qt.C) {
			c.Assert(EventName(test.event), qt.Equals, test.want)
		})
	}
}
