package level

import "github.com/rotisserie/eris"

var (
	ErrInvalidManifest = eris.New("invalid level manifest")
	ErrUnknownLevel    = eris.New("level does not exist")
	ErrInvalidMap      = eris.New("invalid map specification")
)
