// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidPassword       = errors.New("password must be at least 8 characters")
	ErrPasswordRequired      = errors.New("password is required")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
