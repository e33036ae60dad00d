// Package auth holds the account commands: login, logout, whoami,
// signup and the password reset pair. Login persists the bearer token in
// the local session store; every other command group reads it from there.
package auth

import (
	"github.com/paularlott/cli"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		LoginCommand(),
		LogoutCommand(),
		WhoamiCommand(),
		SignupCommand(),
		ForgotPasswordCommand(),
		ResetPasswordCommand(),
	}
}
