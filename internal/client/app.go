// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Aruba-Creative/nokan-api/internal/adapter"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/models"
)

// ErrUsage is returned for unknown commands and bad flags.
var ErrUsage = errors.New("usage error")

const usage = `usage: adminctl <command> [flags]

commands:
  login   -u <username> [-p <password>]           log in and save the session
  whoami                                          show the current user and permissions
  passwd  -current <password> -new <password>     change the password
  logout                                          forget the saved session
  version                                         show the adminctl and server versions
`

var _ Client = (*App)(nil)

type App struct {
	api    adapter.AdminAPI
	tokens TokenStore

	in  io.Reader
	out io.Writer

	build  models.BuildInfo
	logger *logger.Logger
}

func NewApp(api adapter.AdminAPI, tokens TokenStore, in io.Reader, out io.Writer, logger *logger.Logger) *App {
	return &App{api: api, tokens: tokens, in: in, out: out, logger: logger}
}

// SetBuildInfo records the metadata reported by the version command.
func (a *App) SetBuildInfo(info models.BuildInfo) {
	a.build = info
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUsage
	}

	switch args[0] {
	case "login":
		return a.login(ctx, args[1:])
	case "whoami":
		return a.whoami(ctx)
	case "passwd":
		return a.passwd(ctx, args[1:])
	case "logout":
		return a.logout()
	case "version":
		return a.version(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password (read from stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if *username == "" {
		return fmt.Errorf("%w: login requires -u", ErrUsage)
	}

	if *password == "" {
		p, err := a.readLine("password: ")
		if err != nil {
			return err
		}
		*password = p
	}

	user, err := a.api.Login(ctx, models.LoginRequest{Username: *username, Password: *password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err = a.tokens.Save(a.api.Token()); err != nil {
		return err
	}

	a.logger.Info().Str("user_id", user.UserID).Msg("logged in")
	fmt.Fprintf(a.out, "logged in as %s\n", user.Username)
	return nil
}

func (a *App) whoami(ctx context.Context) error {
	if err := a.restoreSession(); err != nil {
		return err
	}

	user, err := a.api.WhoAmI(ctx)
	if err != nil {
		return fmt.Errorf("whoami: %w", err)
	}

	fmt.Fprintf(a.out, "id:       %s\n", user.UserID)
	fmt.Fprintf(a.out, "username: %s\n", user.Username)
	fmt.Fprintf(a.out, "name:     %s\n", user.Name)
	if user.Role == nil {
		fmt.Fprintln(a.out, "role:     <none>")
		return nil
	}

	names := make([]string, 0, len(user.Role.Permissions))
	for name := range user.Role.PermissionNames() {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(a.out, "role:     %s\n", user.Role.Name)
	fmt.Fprintf(a.out, "permissions: %s\n", strings.Join(names, ", "))
	return nil
}

func (a *App) passwd(ctx context.Context, args []string) error {
	fs := a.flagSet("passwd")
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if *current == "" || *next == "" {
		return fmt.Errorf("%w: passwd requires -current and -new", ErrUsage)
	}

	if err := a.restoreSession(); err != nil {
		return err
	}

	_, err := a.api.ChangePassword(ctx, models.ChangePasswordRequest{
		PasswordCurrent: *current,
		Password:        *next,
		PasswordConfirm: *next,
	})
	if err != nil {
		return fmt.Errorf("passwd: %w", err)
	}

	// the old token is stale from now on
	if err = a.tokens.Save(a.api.Token()); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "password changed, other sessions are signed out")
	return nil
}

func (a *App) logout() error {
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) version(ctx context.Context) error {
	fmt.Fprintf(a.out, "adminctl version: %s\n", a.build)

	v, err := a.api.Version(ctx)
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}
	fmt.Fprintf(a.out, "server version: %s\n", v)
	return nil
}

func (a *App) restoreSession() error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	a.api.SetToken(token)
	return nil
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("%w: empty password", ErrUsage)
	}
	return line, nil
}
