package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrSessionSetup = errors.New("feed session setup failed")
	ErrLedgerCommit = errors.New("ledger commit failed")
)
