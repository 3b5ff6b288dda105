package ebiten

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "snakesearch/pkg/engine/input"
)

// repeatKeys are movement keys that repeat while held, mapped to their
// binding codes
var repeatKeys = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyW, "w"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyK, "k"},
	{ebiten.KeyJ, "j"},
	{ebiten.KeyH, "h"},
	{ebiten.KeyL, "l"},
}

// pressKeys only fire once per press
var pressKeys = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyQ, "q"},
	{ebiten.KeyEscape, "escape"},
	{ebiten.KeyR, "r"},
}

// keyIntent maps a binding code to an intent through the input bindings
func keyIntent(device engineinput.Device, code string) engineinput.Intent {
	return engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
		Device:    device,
		Code:      code,
		Timestamp: time.Now(),
	}))
}

// shouldRepeatKey checks if a key/button should trigger (initial press or repeat)
func (e *EbitenRenderer) shouldRepeatKey(pressed bool, code string) bool {
	now := time.Now().UnixMilli()

	e.keyRepeatStateMutex.Lock()
	defer e.keyRepeatStateMutex.Unlock()

	state, exists := e.keyRepeatState[code]
	if !pressed {
		delete(e.keyRepeatState, code)
		return false
	}
	if !exists {
		e.keyRepeatState[code] = keyRepeatInfo{firstPressed: now, lastRepeat: now}
		return true
	}

	if now-state.firstPressed >= keyRepeatInitialDelay && now-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = now
		e.keyRepeatState[code] = state
		return true
	}
	return false
}

// checkInput returns the intents for keyboard presses this tick
func (e *EbitenRenderer) checkInput() []engineinput.Intent {
	var intents []engineinput.Intent
	for _, k := range repeatKeys {
		if e.shouldRepeatKey(ebiten.IsKeyPressed(k.key), "key_"+k.code) {
			intents = append(intents, keyIntent(engineinput.DeviceKeyboard, k.code))
		}
	}
	for _, k := range pressKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			intents = append(intents, keyIntent(engineinput.DeviceKeyboard, k.code))
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		intents = append(intents, keyIntent(engineinput.DeviceKeyboard, "ctrl_c"))
	}
	return intents
}

// checkGamepadInput returns the intents for controller presses this tick.
// NOTE: Button indices here are tuned for common XInput-style controllers on Linux;
// mappings may vary between devices/platforms.
func (e *EbitenRenderer) checkGamepadInput() []engineinput.Intent {
	var intents []engineinput.Intent

	var ids []ebiten.GamepadID
	ids = ebiten.AppendGamepadIDs(ids[:0])

	for _, id := range ids {
		// Left stick: axis 0 is X, axis 1 is Y
		const deadZone = 0.5
		stickX := ebiten.GamepadAxisValue(id, 0)
		stickY := ebiten.GamepadAxisValue(id, 1)

		sticks := []struct {
			pressed bool
			code    string
		}{
			{stickX < -deadZone, "gamepad_dpad_left"},
			{stickX > deadZone, "gamepad_dpad_right"},
			{stickY < -deadZone, "gamepad_dpad_up"},
			{stickY > deadZone, "gamepad_dpad_down"},
		}
		for _, s := range sticks {
			if e.shouldRepeatKey(s.pressed, fmt.Sprintf("gamepad_%d_stick_%s", id, s.code)) {
				intents = append(intents, keyIntent(engineinput.DeviceGamepad, s.code))
			}
		}

		// D-pad: up 11, right 12, down 13, left 14
		dpad := []struct {
			button ebiten.GamepadButton
			code   string
		}{
			{ebiten.GamepadButton11, "gamepad_dpad_up"},
			{ebiten.GamepadButton12, "gamepad_dpad_right"},
			{ebiten.GamepadButton13, "gamepad_dpad_down"},
			{ebiten.GamepadButton14, "gamepad_dpad_left"},
		}
		for _, d := range dpad {
			code := fmt.Sprintf("gamepad_%d_%d", id, d.button)
			if e.shouldRepeatKey(ebiten.IsGamepadButtonPressed(id, d.button), code) {
				intents = append(intents, keyIntent(engineinput.DeviceGamepad, d.code))
			}
		}

		// B quits, Start restarts
		if inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton1) {
			intents = append(intents, keyIntent(engineinput.DeviceGamepad, "gamepad_b"))
		}
		if inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton7) {
			intents = append(intents, keyIntent(engineinput.DeviceGamepad, "gamepad_start"))
		}
	}

	return intents
}
