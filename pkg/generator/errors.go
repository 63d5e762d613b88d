package generator

import "errors"

var (
	ErrInvalidDate = errors.New("rollup date must be formatted as YYYY-MM-DD")
	ErrTemplate    = errors.New("failed to read rollup template")
	ErrWorkDir     = errors.New("failed to prepare working directory")
	ErrDraft       = errors.New("failed to assemble draft")
	ErrArchive     = errors.New("failed to build archive")
)
