package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"vehicledb/pkg/apiclient"
	"vehicledb/pkg/authstore"
	"vehicledb/pkg/guard"
)

const (
	HomePath  = "/"
	LoginPath = "/login"

	maxHops = 8
)

var ErrTooManyRedirects = errors.New("too many redirects")

// Screen renders one location. A non-empty next moves the app there, like
// pushing onto the browser history.
type Screen func(ctx context.Context, a *App, rt *Route) (next string, err error)

type Auth interface {
	guard.StateReader
	Session() (authstore.Session, bool)
	Login(ctx context.Context, emailAddress, password string) error
	Register(ctx context.Context, emailAddress, password string) error
	Logout(ctx context.Context) error
	WaitResolved(ctx context.Context) (authstore.State, error)
}

type VehicleAPI interface {
	ListVehicles(ctx context.Context) ([]apiclient.Vehicle, error)
	CreateVehicle(ctx context.Context, v apiclient.NewVehicle) (*apiclient.Vehicle, error)
	DeleteVehicle(ctx context.Context, vehicleID string) error
}

// App is the terminal counterpart of the single page: one auth store, one
// router and one display for the lifetime of the process.
type App struct {
	Auth     Auth
	Vehicles VehicleAPI
	Router   *Router
	Guard    *guard.Guard
	Logger   *slog.Logger

	in       *bufio.Scanner
	out      io.Writer
	location string
}

func NewApp(auth Auth, vehicles VehicleAPI, in io.Reader, out io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		Auth:     auth,
		Vehicles: vehicles,
		Router:   NewRouter(),
		Guard:    guard.New(auth, LoginPath),
		Logger:   logger,
		in:       bufio.NewScanner(in),
		out:      out,
	}
	registerScreens(a.Router)
	return a
}

// Location is the last rendered location.
func (a *App) Location() string {
	return a.location
}

func (a *App) Navigate(ctx context.Context, location string) error {
	for hop := 0; hop < maxHops; hop++ {
		rt, ok := a.Router.Match(location)
		if !ok {
			a.Printf("not found: %s\n", location)
			return nil
		}

		if rt.Protected {
			out := a.Guard.Check(location)
			switch out.Decision {
			case guard.Loading:
				a.Printf("loading...\n")
				if _, err := a.Auth.WaitResolved(ctx); err != nil {
					return err
				}
				continue
			case guard.Redirect:
				a.Logger.Debug("redirect", "from", location, "to", out.Location)
				location = out.Location
				continue
			}
		}

		a.location = location
		next, err := rt.screen(ctx, a, rt)
		if err != nil {
			return err
		}
		if next == "" {
			return nil
		}
		location = next
	}
	return ErrTooManyRedirects
}

// Run reads shell commands until EOF or quit.
func (a *App) Run(ctx context.Context) error {
	if err := a.Navigate(ctx, HomePath); err != nil {
		return err
	}

	for {
		line, err := a.Prompt(">")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch {
		case fields[0] == "quit" || fields[0] == "exit":
			return nil
		case fields[0] == "help":
			a.Printf("commands: go <path>, help, quit\n")
		case fields[0] == "go" && len(fields) == 2:
			err = a.Navigate(ctx, fields[1])
		case strings.HasPrefix(fields[0], "/"):
			err = a.Navigate(ctx, fields[0])
		default:
			a.Printf("unknown command %q\n", line)
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) Prompt(label string) (string, error) {
	a.Printf("%s ", label)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(a.in.Text()), nil
}

func (a *App) Printf(format string, args ...any) {
	if _, err := fmt.Fprintf(a.out, format, args...); err != nil {
		a.Logger.Error("write screen", "error", err)
	}
}

// ShowError renders err the way forms display it.
func (a *App) ShowError(err error) {
	a.Printf("error: %s\n", ErrorText(err))
}

func ErrorText(err error) string {
	var failed *apiclient.FailedRequest
	if errors.As(err, &failed) {
		return failed.Reason()
	}
	return err.Error()
}
