// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"reflect"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/pbaasd/fault"
)

// ParseConfigurationFile - run a Lua configuration file and decode
// the table it returns into config, which must point to a struct
func ParseConfigurationFile(fileName string, config interface{}) error {
	if !isStructPointer(config) {
		return fault.ErrInvalidStructPointer
	}

	L := newState(fileName)
	defer L.Close()

	if err := L.DoFile(fileName); nil != err {
		return err
	}
	return decode(L, config)
}

// ParseConfigurationString - as ParseConfigurationFile, with the
// Lua source given directly; name is only used as arg[0]
func ParseConfigurationString(name string, source string, config interface{}) error {
	if !isStructPointer(config) {
		return fault.ErrInvalidStructPointer
	}

	L := newState(name)
	defer L.Close()

	if err := L.DoString(source); nil != err {
		return err
	}
	return decode(L, config)
}

func isStructPointer(config interface{}) bool {
	rv := reflect.ValueOf(config)
	return reflect.Ptr == rv.Kind() && !rv.IsNil() && reflect.Struct == rv.Elem().Kind()
}

// standard libraries plus:
//   arg[0]              the configuration name
//   env(name, default)  environment variable, or default when unset or empty
func newState(name string) *lua.LState {
	L := lua.NewState()
	L.OpenLibs()

	arg := L.NewTable()
	arg.Insert(0, lua.LString(name))
	L.SetGlobal("arg", arg)

	L.SetGlobal("env", L.NewFunction(func(L *lua.LState) int {
		value := os.Getenv(L.CheckString(1))
		if "" == value {
			value = L.OptString(2, "")
		}
		L.Push(lua.LString(value))
		return 1
	}))
	return L
}

// the chunk's return value is left on top of the stack
func decode(L *lua.LState, config interface{}) error {
	table, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return fault.ErrInvalidConfiguration
	}

	mapper := gluamapper.NewMapper(gluamapper.Option{
		NameFunc: func(s string) string { return s },
		TagName:  "gluamapper",
	})
	return mapper.Map(table, config)
}
