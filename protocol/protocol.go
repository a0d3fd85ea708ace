package protocol

import (
	"encoding/json"
	"fmt"
)

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	// inbound, issued by the presentation layer
	Reveal
	Restart
	Advance
	Retreat
	SelectLevel
	NewGame
	// outbound
	StateChanged
)

var CmdNames = map[Cmd]string{
	Null:         "Null",
	Reveal:       "Reveal",
	Restart:      "Restart",
	Advance:      "Advance",
	Retreat:      "Retreat",
	SelectLevel:  "SelectLevel",
	NewGame:      "NewGame",
	StateChanged: "StateChanged",
}

var NameToCmd = map[string]Cmd{
	"Null":         Null,
	"Reveal":       Reveal,
	"Restart":      Restart,
	"Advance":      Advance,
	"Retreat":      Retreat,
	"SelectLevel":  SelectLevel,
	"NewGame":      NewGame,
	"StateChanged": StateChanged,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

// ParseCmd looks a command up by name
func ParseCmd(name string) (Cmd, error) {
	c, ok := NameToCmd[name]
	if !ok {
		return Null, fmt.Errorf("unknown command %q", name)
	}
	return c, nil
}

// MarshalJSON writes the command by name
func (c Cmd) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts a command name
func (c *Cmd) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseCmd(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Inbound reports whether the presentation layer may issue the command
func (c Cmd) Inbound() bool {
	return c >= Reveal && c <= NewGame
}
