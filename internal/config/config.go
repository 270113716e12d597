// Package config loads the user's startup file, a small Lua script that
// can point at a theme and register extra file types:
//
//	theme("~/.config/hecto/theme.json")
//	filetype{
//	    name = "TOML",
//	    extensions = {".toml"},
//	    numbers = true,
//	    strings = true,
//	    comments = true,
//	    primary_keywords = {"true", "false"},
//	}
package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/mirao/hecto/internal/highlight"
)

// FileTypeRule is one filetype{} declaration from the config script.
type FileTypeRule struct {
	Name       string
	Extensions []string
	FileType   highlight.FileType
}

// Config is the result of running a config script.
type Config struct {
	ThemePath string
	FileTypes []FileTypeRule
}

// Load runs the Lua script at path and collects its declarations. The
// state is sandboxed: only the base, table, and string libraries are
// opened, so scripts cannot touch the file system or spawn processes.
func Load(path string) (*Config, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)

	cfg := &Config{}
	L.SetGlobal("theme", L.NewFunction(cfg.luaTheme))
	L.SetGlobal("filetype", L.NewFunction(cfg.luaFileType))

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply installs the loaded file types into the highlight registry.
func (c *Config) Apply() {
	for _, rule := range c.FileTypes {
		for _, ext := range rule.Extensions {
			highlight.Register(ext, rule.FileType)
		}
	}
}

func (c *Config) luaTheme(L *lua.LState) int {
	c.ThemePath = L.CheckString(1)
	return 0
}

func (c *Config) luaFileType(L *lua.LState) int {
	table := L.CheckTable(1)

	name := stringField(table, "name")
	if name == "" {
		L.RaiseError("filetype: name is required")
		return 0
	}
	extensions := stringList(table.RawGetString("extensions"))
	if len(extensions) == 0 {
		L.RaiseError("filetype %s: extensions is required", name)
		return 0
	}

	rule := FileTypeRule{
		Name:       name,
		Extensions: extensions,
		FileType: highlight.FileType{
			Name: name,
			Options: highlight.Options{
				Numbers:           boolField(table, "numbers"),
				Strings:           boolField(table, "strings"),
				Characters:        boolField(table, "characters"),
				Comments:          boolField(table, "comments"),
				MultilineComments: boolField(table, "multiline_comments"),
				PrimaryKeywords:   stringList(table.RawGetString("primary_keywords")),
				SecondaryKeywords: stringList(table.RawGetString("secondary_keywords")),
			},
		},
	}
	c.FileTypes = append(c.FileTypes, rule)
	return 0
}

func stringField(table *lua.LTable, key string) string {
	if v, ok := table.RawGetString(key).(lua.LString); ok {
		return string(v)
	}
	return ""
}

func boolField(table *lua.LTable, key string) bool {
	if v, ok := table.RawGetString(key).(lua.LBool); ok {
		return bool(v)
	}
	return false
}

func stringList(value lua.LValue) []string {
	table, ok := value.(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	table.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}
