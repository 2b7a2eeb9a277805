package progress

// Captions shown by the UI after each action.
const (
	msgBrush        = "Brushed! The tooth is cleaner and healthier."
	msgHealthy      = "Healthy food is good for teeth - but keep brushing!"
	msgHealthyBonus = "Great choice! The tooth feels stronger."
	msgReset        = "A brand new tooth. Take good care of it!"
	msgTerminal     = "The tooth is ruined! Reset to start over."
	// MsgNotReady is shown when an action arrives before placement.
	MsgNotReady = "No tooth yet. Point the camera at a surface and tap to place it."
)

// stageMessages is the fixed escalating narrative, indexed by sweet stage.
var stageMessages = [terminalStage + 1]string{
	"",
	"Sugar sticks to the tooth! Cleanliness drops a little...",
	"Too many sweets - the tooth is starting to ache!",
	"Plaque is building up. Maybe brush soon?",
	"A dark spot appears. The decay is spreading!",
	"The tooth really hurts now. Sweets again?",
	"Deep cavities form. This is getting serious!",
	"The tooth is barely holding on...",
	msgTerminal,
}

// StageMessage returns the narrative caption for a sweet stage in [0,8].
func StageMessage(stage int) string {
	if stage < 0 || stage >= len(stageMessages) {
		return ""
	}
	return stageMessages[stage]
}
