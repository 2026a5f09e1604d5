package commands

import (
	"errors"

	"smuth/internal/pkg/guard"
)

var ErrExpireOrdersCommandIsNotConstructed = errors.New(
	"ExpireOrdersCommand must be created via NewExpireOrdersCommand constructor",
)

// ExpireOrdersCommand triggers a sweep that expires every open order whose
// pickup window has already passed. It carries no parameters; the handler's
// clock decides what "passed" means.
type ExpireOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireOrdersCommand creates a sweep command.
func NewExpireOrdersCommand() (ExpireOrdersCommand, error) {
	return ExpireOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOrdersCommandIsNotConstructed)
}
