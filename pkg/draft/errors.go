package draft

import "errors"

var (
	ErrCreateFile   = errors.New("failed to create draft file")
	ErrWriteMessage = errors.New("failed to write draft message")
	ErrReadMessage  = errors.New("failed to read draft message")
)
