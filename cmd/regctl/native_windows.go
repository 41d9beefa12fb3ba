//go:build windows

package main

import (
	"github.com/joshuapare/regkit/pkg/native"
	"github.com/joshuapare/regkit/pkg/native/winapi"
)

func nativeAPI() (native.API, error) { return winapi.New(), nil }
