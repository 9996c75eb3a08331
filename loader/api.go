package loader

import (
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	adventure *lua.LTable
	rooms     []luaDef
	npcs      []luaDef
}

type luaDef struct {
	id    string
	table *lua.LTable
}

// registerAPI registers the authoring constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Adventure { title = "...", start = "...", ... }
	L.SetGlobal("Adventure", L.NewFunction(func(L *lua.LState) int {
		coll.adventure = L.CheckTable(1)
		return 0
	}))

	// Room "id" { ... }
	L.SetGlobal("Room", curried(L, func(id string, tbl *lua.LTable) {
		coll.rooms = append(coll.rooms, luaDef{id: id, table: tbl})
	}))

	// NPC "id" { ... }
	L.SetGlobal("NPC", curried(L, func(id string, tbl *lua.LTable) {
		coll.npcs = append(coll.npcs, luaDef{id: id, table: tbl})
	}))

	// Check(dc, "text") gates an action behind a difficulty check.
	L.SetGlobal("Check", L.NewFunction(func(L *lua.LState) int {
		dc := L.CheckInt(1)
		text := L.CheckString(2)
		tbl := L.NewTable()
		tbl.RawSetString("dc", lua.LNumber(dc))
		tbl.RawSetString("text", lua.LString(text))
		L.Push(tbl)
		return 1
	}))

	// Line("text", Choice(...), ...) is one line of a conversation.
	L.SetGlobal("Line", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		choices := L.NewTable()
		for i := 2; i <= L.GetTop(); i++ {
			choices.Append(L.CheckTable(i))
		}
		tbl := L.NewTable()
		tbl.RawSetString("line", lua.LString(text))
		tbl.RawSetString("choices", choices)
		L.Push(tbl)
		return 1
	}))

	// Choice("label", Line(...)) is one option of a line.
	L.SetGlobal("Choice", L.NewFunction(func(L *lua.LState) int {
		label := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("label", lua.LString(label))
		if next, ok := L.Get(2).(*lua.LTable); ok {
			tbl.RawSetString("next", next)
		}
		L.Push(tbl)
		return 1
	}))
}

// curried builds a `Kind "id" { ... }` constructor: the first call takes
// the id and returns a function that takes the body table.
func curried(L *lua.LState, add func(id string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			add(id, L.CheckTable(1))
			return 0
		}))
		return 1
	})
}

// raw converts the collected tables into the format-neutral form.
func (c *collector) raw(ve *ValidationError) *rawAdventure {
	raw := &rawAdventure{}
	if c.adventure == nil {
		ve.errorf("no Adventure {} block defined")
	} else {
		raw.Title = getString(c.adventure, "title")
		raw.Intro = getString(c.adventure, "intro")
		raw.Difficulty = getString(c.adventure, "difficulty")
		raw.Length = getString(c.adventure, "length")
		raw.Start = getString(c.adventure, "start")
	}

	for _, def := range c.npcs {
		raw.NPCs = append(raw.NPCs, rawNPC{
			ID:           def.id,
			Name:         getString(def.table, "name"),
			Conversation: luaConversation(getTable(def.table, "conversation")),
		})
	}

	for _, def := range c.rooms {
		raw.Rooms = append(raw.Rooms, luaRoom(def, ve))
	}
	return raw
}

func luaRoom(def luaDef, ve *ValidationError) rawRoom {
	tbl := def.table
	rr := rawRoom{
		ID:           def.id,
		Name:         getString(tbl, "name"),
		Description:  getString(tbl, "description"),
		BackReason:   getString(tbl, "go_back_reason"),
		Conversation: luaConversation(getTable(tbl, "conversation")),
		NPCs:         getStrings(tbl, "npcs"),
	}

	if b, ok := tbl.RawGetString("go_back").(lua.LBool); ok {
		v := bool(b)
		rr.GoBack = &v
	}

	if exits := getTable(tbl, "exits"); exits != nil {
		rr.Exits = map[string]string{}
		exits.ForEach(func(k, v lua.LValue) {
			dir, dok := k.(lua.LString)
			target, tok := v.(lua.LString)
			if !dok || !tok {
				ve.errorf("room %q exits must map direction names to room ids", def.id)
				return
			}
			rr.Exits[string(dir)] = string(target)
		})
	}

	for name := range actionNames {
		switch v := tbl.RawGetString(name).(type) {
		case *lua.LNilType:
		case lua.LString:
			rr.addAction(name, rawAction{Text: string(v)})
		case *lua.LTable:
			a := rawAction{Text: getString(v, "text")}
			if n, ok := v.RawGetString("dc").(lua.LNumber); ok {
				dc := int(n)
				a.DC = &dc
			}
			rr.addAction(name, a)
		default:
			ve.errorf("room %q %s must be text or Check(dc, text), got %s", def.id, name, v.Type())
		}
	}
	return rr
}

func (rr *rawRoom) addAction(name string, a rawAction) {
	if rr.Actions == nil {
		rr.Actions = map[string]rawAction{}
	}
	rr.Actions[name] = a
}

// luaConversation walks nested Line tables with an explicit stack. A
// table reached twice maps to the same rawLine, so shared lines and loops
// back to earlier lines survive as shared nodes.
func luaConversation(root *lua.LTable) *rawLine {
	if root == nil {
		return nil
	}

	type pending struct {
		tbl *lua.LTable
		out *rawLine
	}
	top := &rawLine{}
	seen := map[*lua.LTable]*rawLine{root: top}
	stack := []pending{{root, top}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		p.out.Line = getString(p.tbl, "line")
		choices := getTable(p.tbl, "choices")
		if choices == nil {
			continue
		}
		for i := 1; i <= choices.MaxN(); i++ {
			ct, ok := choices.RawGetInt(i).(*lua.LTable)
			if !ok {
				continue
			}
			choice := rawChoice{Label: getString(ct, "label")}
			if nt := getTable(ct, "next"); nt != nil {
				next, ok := seen[nt]
				if !ok {
					next = &rawLine{}
					seen[nt] = next
					stack = append(stack, pending{nt, next})
				}
				choice.Next = next
			}
			p.out.Choices = append(p.out.Choices, choice)
		}
	}
	return top
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings returns the string elements of an array field.
func getStrings(tbl *lua.LTable, key string) []string {
	arr := getTable(tbl, key)
	if arr == nil {
		return nil
	}
	var out []string
	for i := 1; i <= arr.MaxN(); i++ {
		if s, ok := arr.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// sortedLuaFiles puts adventure.lua first, then the rest alphabetically.
func sortedLuaFiles(files []string) []string {
	sort.Slice(files, func(i, j int) bool {
		if files[i] == "adventure.lua" {
			return true
		}
		if files[j] == "adventure.lua" {
			return false
		}
		return files[i] < files[j]
	})
	return files
}
