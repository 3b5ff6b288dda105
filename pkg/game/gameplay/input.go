package gameplay

import (
	"snakesearch/pkg/engine/input"
)

func quitRequested(intents []input.Intent) bool {
	for _, in := range intents {
		if in.Action == input.ActionQuit {
			return true
		}
	}
	return false
}

func restartRequested(intents []input.Intent) bool {
	for _, in := range intents {
		if in.Action == input.ActionRestart {
			return true
		}
	}
	return false
}
