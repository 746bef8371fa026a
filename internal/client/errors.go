package client

import "errors"

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMissingCommand   = errors.New("missing command")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWalletNotFound   = errors.New("no wallet found, run \"walletctl create\" first")
)
