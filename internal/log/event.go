package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventDraw EventType = iota
	EventDiscard
	EventRecycle
	EventPlay
	EventRemove
	EventAddToHand
	EventResourceChange
	EventUpgradeAcquired
	EventUpgradeTrigger
	EventModifierAdded
	EventModifierFired
	EventNewDay
	EventNewWeek
	EventNewMonth
	EventInflation
	EventChoiceOffered
	EventChoicePicked
	EventChoiceSkipped
	EventDiscovery
	EventAchievement
	EventWin
	EventGameOver
	EventReset
	EventError
)

func (e EventType) String() string {
	switch e {
	case EventDraw:
		return "Draw"
	case EventDiscard:
		return "Discard"
	case EventRecycle:
		return "Recycle"
	case EventPlay:
		return "Play"
	case EventRemove:
		return "Remove"
	case EventAddToHand:
		return "AddToHand"
	case EventResourceChange:
		return "ResourceChange"
	case EventUpgradeAcquired:
		return "UpgradeAcquired"
	case EventUpgradeTrigger:
		return "UpgradeTrigger"
	case EventModifierAdded:
		return "ModifierAdded"
	case EventModifierFired:
		return "ModifierFired"
	case EventNewDay:
		return "NewDay"
	case EventNewWeek:
		return "NewWeek"
	case EventNewMonth:
		return "NewMonth"
	case EventInflation:
		return "Inflation"
	case EventChoiceOffered:
		return "ChoiceOffered"
	case EventChoicePicked:
		return "ChoicePicked"
	case EventChoiceSkipped:
		return "ChoiceSkipped"
	case EventDiscovery:
		return "Discovery"
	case EventAchievement:
		return "Achievement"
	case EventWin:
		return "Win"
	case EventGameOver:
		return "GameOver"
	case EventReset:
		return "Reset"
	case EventError:
		return "Error"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a session.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Day     int       // in-game day (0-based, floored)
	Type    EventType // event type
	Card    string    // card or upgrade name (if applicable)
	Details string    // human-readable detail string
}
