package bot

import (
	"strconv"
	"strings"

	"github.com/okuznetsova/coffeepoint-bot/flow"
)

// callbackEvent translates inline-keyboard callback data into a flow
// event. Unknown data (stale buttons from an old bot version) is
// reported as not matched and dropped by the caller.
func callbackEvent(data string) (flow.Event, bool) {
	switch {
	case strings.HasPrefix(data, cbDrinkPrefix):
		return flow.Event{Kind: flow.EventSelectDrink, Text: strings.TrimPrefix(data, cbDrinkPrefix)}, true
	case strings.HasPrefix(data, cbSizePrefix):
		raw := strings.TrimPrefix(data, cbSizePrefix)
		ml, err := strconv.Atoi(raw)
		if err != nil {
			return flow.Event{}, false
		}
		return flow.Event{Kind: flow.EventSelectSize, Text: raw, SizeML: ml}, true
	case strings.HasPrefix(data, cbMilkPrefix):
		return flow.Event{Kind: flow.EventSelectMilk, Text: strings.TrimPrefix(data, cbMilkPrefix)}, true
	case strings.HasPrefix(data, cbAddonPrefix):
		return flow.Event{Kind: flow.EventToggleAddon, Text: strings.TrimPrefix(data, cbAddonPrefix)}, true
	case data == cbAddonsDone:
		return flow.Event{Kind: flow.EventFinishAddons}, true
	case data == cbTimeASAP:
		return flow.Event{Kind: flow.EventTimeASAP}, true
	case data == cbTimeManual:
		return flow.Event{Kind: flow.EventTimeManual}, true
	case data == cbConfirmYes:
		return flow.Event{Kind: flow.EventConfirmYes}, true
	case data == cbConfirmNo:
		return flow.Event{Kind: flow.EventConfirmNo}, true
	case strings.HasPrefix(data, cbBackPrefix):
		return flow.Event{Kind: flow.EventBack}, true
	}
	return flow.Event{}, false
}

// messageEvent translates free text into a flow event, given the current
// session state. Only the category step and the typed-time step accept
// text; everything else comes in as callbacks.
func messageEvent(state flow.State, text string) (flow.Event, bool) {
	text = strings.TrimSpace(text)
	switch {
	case text == btnBack:
		return flow.Event{Kind: flow.EventBack}, true
	case text == btnBeginOrder:
		return flow.Event{Kind: flow.EventBeginOrder}, true
	case state == flow.StateChoosingCategory:
		return flow.Event{Kind: flow.EventSelectCategory, Text: text}, true
	case state == flow.StateTypingPickupTime:
		return flow.Event{Kind: flow.EventSubmitTime, Text: text}, true
	}
	return flow.Event{}, false
}
