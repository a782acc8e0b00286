package app

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

var eventNames = map[uint32]string{
	uint32(sdl.QUIT):                 "QUIT",
	uint32(sdl.APP_TERMINATING):      "APP_TERMINATING",
	uint32(sdl.APP_LOWMEMORY):        "APP_LOWMEMORY",
	uint32(sdl.WINDOWEVENT):          "WINDOWEVENT",
	uint32(sdl.SYSWMEVENT):           "SYSWMEVENT",
	uint32(sdl.KEYDOWN):              "KEYDOWN",
	uint32(sdl.KEYUP):                "KEYUP",
	uint32(sdl.TEXTEDITING):          "TEXTEDITING",
	uint32(sdl.TEXTINPUT):            "TEXTINPUT",
	uint32(sdl.KEYMAPCHANGED):        "KEYMAPCHANGED",
	uint32(sdl.MOUSEMOTION):          "MOUSEMOTION",
	uint32(sdl.MOUSEBUTTONDOWN):      "MOUSEBUTTONDOWN",
	uint32(sdl.MOUSEBUTTONUP):        "MOUSEBUTTONUP",
	uint32(sdl.MOUSEWHEEL):           "MOUSEWHEEL",
	uint32(sdl.JOYAXISMOTION):        "JOYAXISMOTION",
	uint32(sdl.JOYBUTTONDOWN):        "JOYBUTTONDOWN",
	uint32(sdl.JOYBUTTONUP):          "JOYBUTTONUP",
	uint32(sdl.JOYDEVICEADDED):       "JOYDEVICEADDED",
	uint32(sdl.JOYDEVICEREMOVED):     "JOYDEVICEREMOVED",
	uint32(sdl.CONTROLLERAXISMOTION): "CONTROLLERAXISMOTION",
	uint32(sdl.CONTROLLERBUTTONDOWN): "CONTROLLERBUTTONDOWN",
	uint32(sdl.CONTROLLERBUTTONUP):   "CONTROLLERBUTTONUP",
	uint32(sdl.FINGERDOWN):           "FINGERDOWN",
	uint32(sdl.FINGERUP):             "FINGERUP",
	uint32(sdl.FINGERMOTION):         "FINGERMOTION",
	uint32(sdl.CLIPBOARDUPDATE):      "CLIPBOARDUPDATE",
	uint32(sdl.DROPFILE):             "DROPFILE",
	uint32(sdl.AUDIODEVICEADDED):     "AUDIODEVICEADDED",
	uint32(sdl.AUDIODEVICEREMOVED):   "AUDIODEVICEREMOVED",
	uint32(sdl.USEREVENT):            "USEREVENT",
}

var windowEventNames = map[uint8]string{
	uint8(sdl.WINDOWEVENT_SHOWN):        "WINDOWEVENT_SHOWN",
	uint8(sdl.WINDOWEVENT_HIDDEN):       "WINDOWEVENT_HIDDEN",
	uint8(sdl.WINDOWEVENT_EXPOSED):      "WINDOWEVENT_EXPOSED",
	uint8(sdl.WINDOWEVENT_MOVED):        "WINDOWEVENT_MOVED",
	uint8(sdl.WINDOWEVENT_RESIZED):      "WINDOWEVENT_RESIZED",
	uint8(sdl.WINDOWEVENT_SIZE_CHANGED): "WINDOWEVENT_SIZE_CHANGED",
	uint8(sdl.WINDOWEVENT_MINIMIZED):    "WINDOWEVENT_MINIMIZED",
	uint8(sdl.WINDOWEVENT_MAXIMIZED):    "WINDOWEVENT_MAXIMIZED",
	uint8(sdl.WINDOWEVENT_RESTORED):     "WINDOWEVENT_RESTORED",
	uint8(sdl.WINDOWEVENT_ENTER):        "WINDOWEVENT_ENTER",
	uint8(sdl.WINDOWEVENT_LEAVE):        "WINDOWEVENT_LEAVE",
	uint8(sdl.WINDOWEVENT_FOCUS_GAINED): "WINDOWEVENT_FOCUS_GAINED",
	uint8(sdl.WINDOWEVENT_FOCUS_LOST):   "WINDOWEVENT_FOCUS_LOST",
	uint8(sdl.WINDOWEVENT_CLOSE):        "WINDOWEVENT_CLOSE",
}

// EventName returns a readable name for an SDL event. Window events are
// named after their sub-event.
func EventName(event sdl.Event) string {
	if windowEvent, ok := event.(*sdl.WindowEvent); ok {
		if name, ok := windowEventNames[windowEvent.Event]; ok {
			return name
		}
		return fmt.Sprintf("UNKNOWN_WINDOWEVENT_%02X", windowEvent.Event)
	}

	if name, ok := eventNames[event.GetType()]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_SDL_EVENT_%04X", event.GetType())
}
