//go:build !windows

package main

import "github.com/joshuapare/regkit/pkg/native"

func nativeAPI() (native.API, error) { return nil, errNoNative }
