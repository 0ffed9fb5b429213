package printer

import (
	"bytes"
	"encoding/hex"
	"strings"
)

// Command is one protocol instruction with a human readable description.
type Command struct {
	Description string
	Payload     []byte
}

func newCommand(description string, payload ...byte) Command {
	return Command{Description: description, Payload: payload}
}

// Hex returns the payload as upper case hex.
func (c Command) Hex() string {
	return strings.ToUpper(hex.EncodeToString(c.Payload))
}

// CommandBatch is an ordered, titled list of commands.
type CommandBatch struct {
	Title    string
	Commands []Command
}

func (b CommandBatch) Descriptions() []string {
	out := make([]string, len(b.Commands))
	for i, c := range b.Commands {
		out[i] = c.Description
	}
	return out
}

func (b CommandBatch) Payloads() [][]byte {
	out := make([][]byte, len(b.Commands))
	for i, c := range b.Commands {
		out[i] = c.Payload
	}
	return out
}

// Payload concatenates every command payload.
func (b CommandBatch) Payload() []byte {
	var buf bytes.Buffer
	for _, c := range b.Commands {
		buf.Write(c.Payload)
	}
	return buf.Bytes()
}

// flatten merges batches into one titled batch.
func flatten(title string, batches ...CommandBatch) CommandBatch {
	out := CommandBatch{Title: title}
	for _, b := range batches {
		out.Commands = append(out.Commands, b.Commands...)
	}
	return out
}
