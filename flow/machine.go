// Package flow implements the conversational ordering state machine.
// Each user session walks category → drink → size → (milk) → add-ons →
// pickup time → confirmation; every transition is validated against the
// catalog and either advances the session or fails locally with a hint.
package flow

import (
	"regexp"

	"github.com/okuznetsova/coffeepoint-bot/catalog"
)

// State is the current step of the ordering conversation.
type State int

const (
	StateIdle State = iota
	StateChoosingCategory
	StateChoosingDrink
	StateChoosingSize
	StateChoosingMilk
	StateChoosingAddons
	StateChoosingPickupTime
	StateTypingPickupTime
	StateConfirming
)

var stateNames = map[State]string{
	StateIdle:               "idle",
	StateChoosingCategory:   "choosing_category",
	StateChoosingDrink:      "choosing_drink",
	StateChoosingSize:       "choosing_size",
	StateChoosingMilk:       "choosing_milk",
	StateChoosingAddons:     "choosing_addons",
	StateChoosingPickupTime: "choosing_pickup_time",
	StateTypingPickupTime:   "typing_pickup_time",
	StateConfirming:         "confirming",
}

func (s State) String() string {
	return stateNames[s]
}

// EventKind identifies an inbound user action.
type EventKind int

const (
	EventBeginOrder EventKind = iota
	EventSelectCategory
	EventSelectDrink
	EventSelectSize
	EventSelectMilk
	EventToggleAddon
	EventFinishAddons
	EventTimeASAP
	EventTimeManual
	EventSubmitTime
	EventConfirmYes
	EventConfirmNo
	EventBack
)

var eventNames = map[EventKind]string{
	EventBeginOrder:     "begin_order",
	EventSelectCategory: "select_category",
	EventSelectDrink:    "select_drink",
	EventSelectSize:     "select_size",
	EventSelectMilk:     "select_milk",
	EventToggleAddon:    "toggle_addon",
	EventFinishAddons:   "finish_addons",
	EventTimeASAP:       "time_asap",
	EventTimeManual:     "time_manual",
	EventSubmitTime:     "submit_time",
	EventConfirmYes:     "confirm_yes",
	EventConfirmNo:      "confirm_no",
	EventBack:           "back",
}

func (k EventKind) String() string {
	return eventNames[k]
}

// Event is one inbound user action. Text carries the selection name or
// typed time, SizeML the chosen cup size.
type Event struct {
	Kind   EventKind
	Text   string
	SizeML int
}

// Prompt tells the transport what to render next.
type Prompt int

const (
	// PromptMainMenu shows the idle main menu.
	PromptMainMenu Prompt = iota
	// PromptCategories shows the category keyboard.
	PromptCategories
	// PromptDrinks shows the drinks of the chosen category.
	PromptDrinks
	// PromptSizes shows the sizes of the chosen drink.
	PromptSizes
	// PromptMilk shows the milk options with the current one marked.
	PromptMilk
	// PromptAddons shows the add-on multi-select.
	PromptAddons
	// PromptAddonsRefresh re-renders the add-on selector in place after
	// a toggle; the session state did not change.
	PromptAddonsRefresh
	// PromptTimeChoices shows asap / manual time entry.
	PromptTimeChoices
	// PromptTypeTime asks for a typed HH:MM time.
	PromptTypeTime
	// PromptConfirm shows the order preview with confirm buttons.
	PromptConfirm
	// PromptFinalize instructs the caller to persist the draft and
	// notify staff. The session stays in Confirming until Complete is
	// called, so a failed save keeps the draft for retry.
	PromptFinalize
)

// Result is the rendering instruction produced by a successful transition.
// Draft is the session draft (a detached copy for PromptFinalize).
type Result struct {
	Prompt Prompt
	Draft  *Draft
}

var timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// Session is one user's conversation. It is not safe for concurrent use;
// the transport must deliver events for one session sequentially.
type Session struct {
	State State
	Draft *Draft
}

// NewSession returns an idle session with no draft.
func NewSession() *Session {
	return &Session{State: StateIdle}
}

// Reset discards the draft and returns the session to idle.
func (s *Session) Reset() {
	s.State = StateIdle
	s.Draft = nil
}

// Complete acknowledges a successful finalize and resets the session.
func (s *Session) Complete() {
	s.Reset()
}

// Apply runs one event through the state machine. On success it mutates
// the session and returns what to render next. On failure the session and
// draft are untouched and the error carries a user-facing hint; the
// caller re-renders the current step. Events with no transition from the
// current state return ErrEventNotAllowed and should be dropped.
//
// All transitions live in this one switch on (state, event kind).
func (s *Session) Apply(ev Event) (Result, error) {
	// Начать заказ restarts from anywhere, discarding the current draft.
	if ev.Kind == EventBeginOrder {
		s.State = StateChoosingCategory
		s.Draft = &Draft{}
		return Result{Prompt: PromptCategories, Draft: s.Draft}, nil
	}

	switch s.State {
	case StateChoosingCategory:
		switch ev.Kind {
		case EventSelectCategory:
			if !catalog.HasCategory(ev.Text) {
				return Result{}, &InvalidSelectionError{
					Input: ev.Text,
					Hint:  "Не понял категорию 😅 Выбери кнопкой ниже.",
				}
			}
			s.Draft.Category = ev.Text
			s.State = StateChoosingDrink
			return Result{Prompt: PromptDrinks, Draft: s.Draft}, nil
		case EventBack:
			s.Reset()
			return Result{Prompt: PromptMainMenu}, nil
		}

	case StateChoosingDrink:
		switch ev.Kind {
		case EventSelectDrink:
			if !drinkInCategory(s.Draft.Category, ev.Text) {
				return Result{}, &NotFoundError{
					Name: ev.Text,
					Hint: "Что-то пошло не так: не нашёл напиток. Попробуй ещё раз.",
				}
			}
			s.Draft.Drink = ev.Text
			s.Draft.resetDownstreamOfDrink()
			s.State = StateChoosingSize
			return Result{Prompt: PromptSizes, Draft: s.Draft}, nil
		case EventBack:
			s.State = StateChoosingCategory
			return Result{Prompt: PromptCategories, Draft: s.Draft}, nil
		}

	case StateChoosingSize:
		switch ev.Kind {
		case EventSelectSize:
			sizes, err := catalog.SizesFor(s.Draft.Drink)
			if err != nil {
				return Result{}, &NotFoundError{
					Name: s.Draft.Drink,
					Hint: "Что-то пошло не так: не нашёл размеры. Попробуй ещё раз.",
				}
			}
			if !containsInt(sizes, ev.SizeML) {
				return Result{}, &InvalidSelectionError{
					Input: ev.Text,
					Hint:  "Такого объёма нет 😅 Выбери кнопкой ниже.",
				}
			}
			s.Draft.SizeML = ev.SizeML
			if catalog.RequiresMilk(s.Draft.Drink) {
				// Milk drinks always carry a milk choice; pre-select the
				// default so the user can just tap through.
				if s.Draft.Milk == nil {
					milk := catalog.DefaultMilk()
					s.Draft.Milk = &milk
				}
				s.State = StateChoosingMilk
				return Result{Prompt: PromptMilk, Draft: s.Draft}, nil
			}
			s.Draft.Milk = nil
			s.State = StateChoosingAddons
			return Result{Prompt: PromptAddons, Draft: s.Draft}, nil
		case EventBack:
			s.State = StateChoosingDrink
			return Result{Prompt: PromptDrinks, Draft: s.Draft}, nil
		}

	case StateChoosingMilk:
		switch ev.Kind {
		case EventSelectMilk:
			if !catalog.IsMilkOption(ev.Text) {
				return Result{}, &InvalidSelectionError{
					Input: ev.Text,
					Hint:  "Такого молока нет 😅 Выбери кнопкой ниже.",
				}
			}
			milk := ev.Text
			s.Draft.Milk = &milk
			s.State = StateChoosingAddons
			return Result{Prompt: PromptAddons, Draft: s.Draft}, nil
		case EventBack:
			s.State = StateChoosingSize
			return Result{Prompt: PromptSizes, Draft: s.Draft}, nil
		}

	case StateChoosingAddons:
		switch ev.Kind {
		case EventToggleAddon:
			if !catalog.IsAddonOption(ev.Text) {
				return Result{}, &InvalidSelectionError{
					Input: ev.Text,
					Hint:  "Такой добавки нет 😅 Выбери кнопкой ниже.",
				}
			}
			s.Draft.toggleAddon(ev.Text)
			return Result{Prompt: PromptAddonsRefresh, Draft: s.Draft}, nil
		case EventFinishAddons:
			s.State = StateChoosingPickupTime
			return Result{Prompt: PromptTimeChoices, Draft: s.Draft}, nil
		case EventBack:
			// Add-ons chosen so far survive the round trip.
			if catalog.RequiresMilk(s.Draft.Drink) {
				s.State = StateChoosingMilk
				return Result{Prompt: PromptMilk, Draft: s.Draft}, nil
			}
			s.State = StateChoosingSize
			return Result{Prompt: PromptSizes, Draft: s.Draft}, nil
		}

	case StateChoosingPickupTime:
		switch ev.Kind {
		case EventTimeASAP:
			s.Draft.PickupTime = PickupASAP
			s.State = StateConfirming
			return Result{Prompt: PromptConfirm, Draft: s.Draft}, nil
		case EventTimeManual:
			s.State = StateTypingPickupTime
			return Result{Prompt: PromptTypeTime, Draft: s.Draft}, nil
		case EventBack:
			s.State = StateChoosingAddons
			return Result{Prompt: PromptAddons, Draft: s.Draft}, nil
		}

	case StateTypingPickupTime:
		switch ev.Kind {
		case EventSubmitTime:
			if !timeRe.MatchString(ev.Text) {
				return Result{}, &ValidationError{
					Input: ev.Text,
					Hint:  "Не похоже на HH:MM 😅 Пример: 09:40 или 18:15",
				}
			}
			s.Draft.PickupTime = ev.Text
			s.State = StateConfirming
			return Result{Prompt: PromptConfirm, Draft: s.Draft}, nil
		case EventBack:
			s.State = StateChoosingPickupTime
			return Result{Prompt: PromptTimeChoices, Draft: s.Draft}, nil
		}

	case StateConfirming:
		switch ev.Kind {
		case EventConfirmYes:
			// Detached copy: the caller persists it and then calls
			// Complete. On a failed save the session keeps the draft.
			return Result{Prompt: PromptFinalize, Draft: s.Draft.Clone()}, nil
		case EventConfirmNo:
			s.Reset()
			return Result{Prompt: PromptMainMenu}, nil
		case EventBack:
			s.State = StateChoosingPickupTime
			return Result{Prompt: PromptTimeChoices, Draft: s.Draft}, nil
		}
	}

	return Result{}, ErrEventNotAllowed
}

func drinkInCategory(category, drink string) bool {
	for _, d := range catalog.DrinksIn(category) {
		if d.Name == drink {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
