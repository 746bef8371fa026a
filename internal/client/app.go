package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/MKhiriev/freedom-sidecar/internal/adapter"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/models"
)

type command struct {
	name  string
	usage string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = []command{
	{"exists", "report whether a wallet has been created", (*App).exists},
	{"create", "create a new wallet and unlock it", (*App).create},
	{"unlock", "unlock the wallet", (*App).unlock},
	{"lock", "lock the wallet", (*App).lock},
	{"password", "change the wallet password", (*App).changePassword},
	{"address", "print the address of the unlocked wallet", (*App).address},
	{"balance", "print the balance of the unlocked wallet", (*App).balance},
	{"status", "print the wallet engine status", (*App).status},
	{"health", "check that the sidecar is up", (*App).health},
	{"version", "print the sidecar version", (*App).version},
}

type App struct {
	sidecar   adapter.SidecarAdapter
	passwords PasswordReader
	out       io.Writer
	logger    *logger.Logger
}

func NewApp(sidecar adapter.SidecarAdapter, passwords PasswordReader, out io.Writer, logger *logger.Logger) (*App, error) {
	if sidecar == nil {
		return nil, errors.New("sidecar adapter is required")
	}
	if passwords == nil {
		return nil, errors.New("password reader is required")
	}
	return &App{sidecar: sidecar, passwords: passwords, out: out, logger: logger}, nil
}

// Run executes args[0] with the remaining operands.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.Usage()
		return ErrMissingCommand
	}
	if args[0] == "help" {
		a.Usage()
		return nil
	}

	i := slices.IndexFunc(commands, func(c command) bool { return c.name == args[0] })
	if i < 0 {
		a.Usage()
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	return commands[i].run(a, ctx, args[1:])
}

// Usage prints the command list.
func (a *App) Usage() {
	fmt.Fprintln(a.out, "usage: walletctl [flags] <command>")
	fmt.Fprintln(a.out)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.usage)
	}
	tw.Flush()
}

func (a *App) exists(ctx context.Context, _ []string) error {
	exists, err := a.sidecar.WalletExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		fmt.Fprintln(a.out, "wallet exists")
	} else {
		fmt.Fprintln(a.out, "no wallet")
	}
	return nil
}

func (a *App) create(ctx context.Context, _ []string) error {
	password, err := a.newPassword("New wallet password: ")
	if err != nil {
		return err
	}

	addr, err := a.sidecar.CreateWallet(ctx, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "wallet created\naddress: %s\n", addr)
	return nil
}

func (a *App) unlock(ctx context.Context, _ []string) error {
	password, err := a.passwords.ReadPassword("Wallet password: ")
	if err != nil {
		return err
	}

	addr, err := a.sidecar.UnlockWallet(ctx, password)
	if errors.Is(err, adapter.ErrNotFound) {
		return ErrWalletNotFound
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "wallet unlocked\naddress: %s\n", addr)
	return nil
}

func (a *App) lock(ctx context.Context, _ []string) error {
	if err := a.sidecar.LockWallet(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "wallet locked")
	return nil
}

func (a *App) changePassword(ctx context.Context, _ []string) error {
	oldPassword, err := a.passwords.ReadPassword("Current password: ")
	if err != nil {
		return err
	}
	newPassword, err := a.newPassword("New password: ")
	if err != nil {
		return err
	}

	if err = a.sidecar.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "password changed")
	return nil
}

// newPassword asks for a password twice.
func (a *App) newPassword(prompt string) (string, error) {
	password, err := a.passwords.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	confirm, err := a.passwords.ReadPassword("Repeat password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", ErrPasswordMismatch
	}
	return password, nil
}

func (a *App) address(ctx context.Context, _ []string) error {
	addr, err := a.sidecar.Address(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, addr)
	return nil
}

func (a *App) balance(ctx context.Context, _ []string) error {
	balance, err := a.sidecar.Balance(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s ETH (%s wei)\n", balance.Balance, balance.BalanceWei)
	return nil
}

func (a *App) status(ctx context.Context, _ []string) error {
	status, err := a.sidecar.EngineStatus(ctx)
	if err != nil {
		return err
	}
	printStatus(a.out, status)
	return nil
}

func printStatus(out io.Writer, status models.EngineStatus) {
	tw := tabwriter.NewWriter(out, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "state:\t%s\n", status.State)
	fmt.Fprintf(tw, "engine ready:\t%t\n", status.EngineReady)
	fmt.Fprintf(tw, "wallet ready:\t%t\n", status.WalletReady)
	if len(status.FeeTable) > 0 {
		var fees []string
		for _, k := range slices.Sorted(maps.Keys(status.FeeTable)) {
			fees = append(fees, fmt.Sprintf("%s=%v", k, status.FeeTable[k]))
		}
		fmt.Fprintf(tw, "fees:\t%s\n", strings.Join(fees, " "))
	}
	tw.Flush()
}

func (a *App) health(ctx context.Context, _ []string) error {
	health, err := a.sidecar.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", health.Status, health.Timestamp)
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.sidecar.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, v)
	return nil
}
