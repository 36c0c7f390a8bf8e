package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/eternalApril/moonray/client"
	"github.com/eternalApril/moonray/internal/config"
	"github.com/eternalApril/moonray/internal/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync() //nolint:errcheck

	conn, err := client.Dial(client.Options{
		Addr:         cfg.Server.Addr(),
		DialTimeout:  cfg.Server.DialTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Logger:       log,
	})
	if err != nil {
		log.Error("connect failed", zap.Error(err))
		os.Exit(1)
	}
	defer conn.Close() //nolint:errcheck

	log.Info("connected", zap.String("addr", cfg.Server.Addr()))

	repl(conn, cfg.Server.Addr())
}

// repl reads one command per line, executes it and prints the decoded
// reply, until EOF or an explicit exit.
func repl(conn *client.Conn, addr string) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("%s> ", addr)

		if !scanner.Scan() {
			fmt.Println()
			return
		}

		args, err := splitArgs(scanner.Text())
		if err != nil {
			fmt.Println("(error)", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "exit", "quit":
			return
		}

		cmd := client.Cmd(args[0])
		for _, arg := range args[1:] {
			cmd.Arg(arg)
		}

		val, err := cmd.Execute(conn)
		if err != nil {
			fmt.Println("(error)", err)
			if errors.Is(err, client.ErrClosed) {
				return
			}
			continue
		}

		fmt.Println(val.Format())
	}
}

// splitArgs tokenizes a command line, honoring double-quoted arguments so
// values may contain spaces. The syntax is deliberately minimal: there is
// no escape character, a quote cannot appear inside an argument, and
// adjacent quoted/unquoted runs join into one argument ("a"b means ab).
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur strings.Builder

	inQuotes := false
	pending := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			pending = true
		case r == ' ' && !inQuotes:
			if pending {
				args = append(args, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}

	if inQuotes {
		return nil, errors.New("unbalanced quotes")
	}
	if pending {
		args = append(args, cur.String())
	}

	return args, nil
}
