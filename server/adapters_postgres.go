//go:build postgres
// +build postgres

package main

import (
	_ "github.com/twonds/idavoll/server/db/postgres"
)
