package heart

import "github.com/rotisserie/eris"

var (
	ErrDuplicateTimer = eris.New("timer already exists in heart")
	ErrInvalidTimer   = eris.New("invalid timer configuration")
	ErrTimerNotFound  = eris.New("timer does not exist")
)
