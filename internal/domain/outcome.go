package domain

import "time"

// Razones de fallo esperadas del pipeline. Nunca se propagan como error;
// siempre terminan en un Outcome.
const (
	ReasonActionDisabled      = "action disabled in configuration"
	ReasonActorExcluded       = "bot actions excluded"
	ReasonNoTemplateAvailable = "no message template available"
	ReasonNoChannelAvailable  = "no available channels"
)

// Outcome es el resultado terminal de un intento de anuncio.
type Outcome struct {
	OK          bool
	Message     string // sólo en éxito
	ChannelName string // sólo en éxito
	Reason      string // sólo en fallo
	Timestamp   time.Time
}

func Success(message, channelName string) Outcome {
	return Outcome{OK: true, Message: message, ChannelName: channelName, Timestamp: time.Now()}
}

func Failure(reason string) Outcome {
	return Outcome{Reason: reason, Timestamp: time.Now()}
}
