package spawn

import "github.com/rotisserie/eris"

var (
	ErrEmptyMobTable     = eris.New("mob table is empty")
	ErrMissingTemplate   = eris.New("mob template is missing")
	ErrIllegalTransition = eris.New("illegal mob state transition")
	ErrUnknownMob        = eris.New("mob does not belong to this pool")
)
