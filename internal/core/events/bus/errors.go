package bus

import "github.com/rotisserie/eris"

var (
	ErrUnknownKind   = eris.New("unknown event kind")
	ErrKindMismatch  = eris.New("handler flavour does not match event kind")
	ErrNilHandler    = eris.New("nil handler")
	ErrNotSubscribed = eris.New("subscription is not registered")
)
