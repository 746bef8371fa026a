// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements walletctl, the command-line client of the
// sidecar API.
//
// [App] maps one subcommand to one or two API calls and prints the answer.
// Passwords are read from the terminal with echo disabled; when stdin is
// not a terminal one line per prompt is read instead, so the commands stay
// scriptable.
package client
