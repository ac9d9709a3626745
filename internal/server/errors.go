package server

import "github.com/rotisserie/eris"

var (
	ErrServerAlreadyRunning = eris.New("server is already running")
	ErrInvalidConfig        = eris.New("invalid server configuration")
)
