package client

import "github.com/eternalApril/moonray/resp"

// Command accumulates the ordered arguments of one request. The first
// argument is the operation name; Arg and ArgBytes append further ones.
// A Command owns copies of its arguments and is consumed by Execute.
type Command struct {
	args [][]byte
}

// Cmd starts building a command:
//
//	v, err := client.Cmd("SET").Arg("key").Arg("value").Execute(conn)
func Cmd(name string) *Command {
	return &Command{args: [][]byte{[]byte(name)}}
}

// Arg appends a string argument.
func (c *Command) Arg(arg string) *Command {
	c.args = append(c.args, []byte(arg))
	return c
}

// ArgBytes appends a binary-safe argument. The bytes are copied so later
// mutation by the caller cannot change the command.
func (c *Command) ArgBytes(arg []byte) *Command {
	owned := make([]byte, len(arg))
	copy(owned, arg)
	c.args = append(c.args, owned)
	return c
}

// Execute encodes the accumulated arguments, sends them over conn and
// decodes the reply. A server error reply decodes successfully and comes
// back as a Value of type resp.TypeError, not as a Go error.
func (c *Command) Execute(conn *Conn) (resp.Value, error) {
	req, err := resp.EncodeCommand(c.args...)
	if err != nil {
		return resp.Value{}, err
	}
	return conn.roundTrip(req)
}
