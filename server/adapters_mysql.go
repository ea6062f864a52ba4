//go:build mysql
// +build mysql

package main

import (
	_ "github.com/twonds/idavoll/server/db/mysql"
)
